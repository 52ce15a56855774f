package web

// errors.go turns errors into responses.
//
// The technical error is logged with the request id; the client only sees
// the message from core.MapError, rendered for the kind of request:
//   - htmx requests get the ErrorAlert partial
//   - API and JSON requests get an ErrorResponse body
//   - anything else gets plain text
//
// The status code is derived from the message code by statusFor.

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/JonMunkholm/TableConverter/internal/core"
	"github.com/JonMunkholm/TableConverter/internal/logging"
	"github.com/JonMunkholm/TableConverter/internal/web/templates"
)

var (
	errNoFile      = errors.New("no file provided")
	errRateLimited = errors.New("rate limit exceeded")
)

// ErrorResponse is the JSON body of a failed API request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

func newErrorResponse(msg core.UserMessage) ErrorResponse {
	return ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	}
}

// statusByCode maps message codes to HTTP statuses. Codes not listed are
// content problems with an uploaded file and answer 422.
var statusByCode = map[string]int{
	"FILE001": http.StatusRequestEntityTooLarge,
	"FILE004": http.StatusBadRequest,
	"FILE008": http.StatusBadRequest,
	"VAL003":  http.StatusBadRequest,
	"VAL004":  http.StatusBadRequest,
	"UPL001":  http.StatusServiceUnavailable,
	"UPL002":  http.StatusRequestTimeout,
	"UPL003":  http.StatusGatewayTimeout,
	"RATE001": http.StatusTooManyRequests,
	"AUTH001": http.StatusUnauthorized,
	"AUTH002": http.StatusForbidden,
	"ERR000":  http.StatusInternalServerError,
}

// statusFor picks the HTTP status for err.
func statusFor(err error) int {
	if status, ok := statusByCode[core.MapError(err).Code]; ok {
		return status
	}
	return http.StatusUnprocessableEntity
}

// respondError logs err and writes the user-facing response with status.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, status int) {
	msg := core.MapError(err)

	logger := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", msg.Code,
	}
	if status >= http.StatusInternalServerError || !core.IsUserFacing(err) {
		logger.Error("request error", attrs...)
	} else {
		logger.Warn("request error", attrs...)
	}

	switch {
	case isHTMX(r):
		// htmx only swaps 2xx responses by default
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("HX-Reswap", "innerHTML")
		w.WriteHeader(http.StatusOK)
		if rerr := templates.ErrorAlert(msg.Message, msg.Action, msg.Code).Render(r.Context(), w); rerr != nil {
			logger.Error("render error alert", "error", rerr)
		}
	case wantsJSON(r):
		render.Status(r, status)
		render.JSON(w, r, newErrorResponse(msg))
	default:
		http.Error(w, core.FormatUserError(err), status)
	}
}

// isHTMX checks if the request is an htmx request.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// wantsJSON checks if the client prefers a JSON response. API routes
// always answer JSON.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/api/")
}

package middleware

import "net/http"

// RequestObserver receives one call per finished request.
type RequestObserver interface {
	ObserveRequest(route string, status int)
}

// Metrics reports every request to obs, labelled by chi route pattern so
// path parameters do not explode label cardinality. Unmatched requests are
// reported under "unmatched".
func Metrics(obs RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := wrap(w)
			next.ServeHTTP(ww, r)

			route := routePattern(r)
			if route == "" {
				route = "unmatched"
			}
			obs.ObserveRequest(route, ww.status)
		})
	}
}

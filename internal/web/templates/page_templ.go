// Code generated by templ - DO NOT EDIT.

// templ: version: v0.2.793
package templates

//lint:file-ignore SA4006 This context is only used if a nested component is present.

import "github.com/a-h/templ"
import templruntime "github.com/a-h/templ/runtime"

import "strconv"

// Page renders the upload form. "Preview" posts it with htmx and swaps the
// results partial into #results; "Download" submits it natively to the
// export endpoint.
func Page(data PageData) templ.Component {
	return templruntime.GeneratedTemplate(func(templ_7745c5c3_Input templruntime.GeneratedComponentInput) (templ_7745c5c3_Err error) {
		templ_7745c5c3_W, ctx := templ_7745c5c3_Input.Writer, templ_7745c5c3_Input.Context
		if templ_7745c5c3_CtxErr := ctx.Err(); templ_7745c5c3_CtxErr != nil {
			return templ_7745c5c3_CtxErr
		}
		templ_7745c5c3_Buffer, templ_7745c5c3_IsBuffer := templruntime.GetBuffer(templ_7745c5c3_W)
		if !templ_7745c5c3_IsBuffer {
			defer func() {
				templ_7745c5c3_BufErr := templruntime.ReleaseBuffer(templ_7745c5c3_Buffer)
				if templ_7745c5c3_Err == nil {
					templ_7745c5c3_Err = templ_7745c5c3_BufErr
				}
			}()
		}
		ctx = templ.InitializeContext(ctx)
		templ_7745c5c3_Var1 := templ.GetChildren(ctx)
		if templ_7745c5c3_Var1 == nil {
			templ_7745c5c3_Var1 = templ.NopComponent
		}
		ctx = templ.ClearChildren(ctx)
		_, templ_7745c5c3_Err = templ_7745c5c3_Buffer.WriteString("<!doctype html><html lang=\"en\"><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>Table Converter</title><script src=\"https://unpkg.com/htmx.org@2.0.4\" crossorigin=\"anonymous\"></script><style>\n\t\t\t\tbody{font-family:system-ui,sans-serif;margin:2rem auto;max-width:72rem;color:#1f2937}\n\t\t\t\tfieldset{border:1px solid #d1d5db;border-radius:.5rem;padding:1rem;margin-bottom:1rem}\n\t\t\t\tlabel{display:block;margin:.25rem 0}\n\t\t\t\tbutton{padding:.5rem 1rem;border-radius:.375rem;border:0;background:#2563eb;color:#fff;cursor:pointer}\n\t\t\t\tbutton.secondary{background:#4b5563}\n\t\t\t\ttable{border-collapse:collapse;margin:.5rem 0 1rem}\n\t\t\t\tth,td{border:1px solid #e5e7eb;padding:.25rem .5rem;text-align:left}\n\t\t\t\ttd.missing{color:#9ca3af;font-style:italic}\n\t\t\t\t.alert{border-radius:.375rem;padding:.75rem 1rem;margin:.5rem 0}\n\t\t\t\t.alert[data-level=error]{background:#fef2f2;color:#991b1b}\n\t\t\t\t.alert[data-level=warning]{background:#fffbeb;color:#92400e}\n\t\t\t\t.file{border-top:2px solid #e5e7eb;padding-top:1rem;margin-top:1rem}\n\t\t\t</style></head><body><h1>Table Converter</h1><p>Upload up to ")
		if templ_7745c5c3_Err != nil {
			return templ_7745c5c3_Err
		}
		var templ_7745c5c3_Var2 string
		templ_7745c5c3_Var2, templ_7745c5c3_Err = templ.JoinStringErrs(strconv.Itoa(data.MaxFiles))
		if templ_7745c5c3_Err != nil {
			return templ.Error{Err: templ_7745c5c3_Err, FileName: `page.templ`, Line: 34, Col: 46}
		}
		_, templ_7745c5c3_Err = templ_7745c5c3_Buffer.WriteString(templ.EscapeString(templ_7745c5c3_Var2))
		if templ_7745c5c3_Err != nil {
			return templ_7745c5c3_Err
		}
		_, templ_7745c5c3_Err = templ_7745c5c3_Buffer.WriteString(" CSV or Excel files (max ")
		if templ_7745c5c3_Err != nil {
			return templ_7745c5c3_Err
		}
		var templ_7745c5c3_Var3 string
		templ_7745c5c3_Var3, templ_7745c5c3_Err = templ.JoinStringErrs(strconv.FormatInt(data.MaxFileSizeMB, 10))
		if templ_7745c5c3_Err != nil {
			return templ.Error{Err: templ_7745c5c3_Err, FileName: `page.templ`, Line: 34, Col: 116}
		}
		_, templ_7745c5c3_Err = templ_7745c5c3_Buffer.WriteString(templ.EscapeString(templ_7745c5c3_Var3))
		if templ_7745c5c3_Err != nil {
			return templ_7745c5c3_Err
		}
		_, templ_7745c5c3_Err = templ_7745c5c3_Buffer.WriteString(" MB each). Each stage shows the first ")
		if templ_7745c5c3_Err != nil {
			return templ_7745c5c3_Err
		}
		var templ_7745c5c3_Var4 string
		templ_7745c5c3_Var4, templ_7745c5c3_Err = templ.JoinStringErrs(strconv.Itoa(data.PreviewRows))
		if templ_7745c5c3_Err != nil {
			return templ.Error{Err: templ_7745c5c3_Err, FileName: `page.templ`, Line: 35, Col: 63}
		}
		_, templ_7745c5c3_Err = templ_7745c5c3_Buffer.WriteString(templ.EscapeString(templ_7745c5c3_Var4))
		if templ_7745c5c3_Err != nil {
			return templ_7745c5c3_Err
		}
		_, templ_7745c5c3_Err = templ_7745c5c3_Buffer.WriteString(" rows.</p><form id=\"upload\" method=\"post\" action=\"/api/export\" target=\"_blank\" enctype=\"multipart/form-data\"><fieldset><legend>Files</legend> <input type=\"file\" name=\"file\" multiple required accept=\".csv,.xlsx\"></fieldset><fieldset><legend>Cleaning</legend> <label><input type=\"checkbox\" name=\"remove_duplicates\" value=\"true\"> Remove duplicate rows</label> <label><input type=\"checkbox\" name=\"fill_missing\" value=\"true\"> Fill missing numeric values with the column mean</label></fieldset><fieldset><legend>Columns and export</legend> <label>Columns to keep (comma separated, empty keeps all) <input type=\"text\" name=\"columns\" placeholder=\"a, b\"></label> <label>Export format <select name=\"format\"><option value=\"csv\">CSV</option> <option value=\"xlsx\">Excel</option></select></label></fieldset><button type=\"submit\" hx-post=\"/preview\" hx-target=\"#results\" hx-encoding=\"multipart/form-data\">Preview</button> <button type=\"submit\" class=\"secondary\">Download first file</button></form><div id=\"results\"></div></body></html>")
		if templ_7745c5c3_Err != nil {
			return templ_7745c5c3_Err
		}
		return templ_7745c5c3_Err
	})
}

var _ = templruntime.GeneratedTemplate

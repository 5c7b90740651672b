package httpapi

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/leonelquinteros/gotext"
	"github.com/russross/blackfriday/v2"
	"github.com/valyala/bytebufferpool"
)

//go:embed templates/*.html
var templateFS embed.FS

const pageTemplate = "index.html"

func parsePageTemplates(locales map[string]*gotext.Po) (*template.Template, error) {
	return template.New("").
		Funcs(pageFuncMap(locales)).
		ParseFS(templateFS, "templates/*.html")
}

func pageFuncMap(locales map[string]*gotext.Po) template.FuncMap {
	return template.FuncMap{
		"t": func(locale, str string) string {
			return translate(locales, locale, str)
		},

		"tmd": func(locale, str string, args ...any) template.HTML {
			return renderMarkdown(translate(locales, locale, str, escapeArgs(args)...))
		},

		"goals": func(v float64) string {
			return strconv.FormatFloat(v, 'f', 1, 64)
		},
	}
}

func translate(locales map[string]*gotext.Po, locale, str string, args ...any) string {
	po, ok := locales[locale]
	if !ok {
		po = locales[localeCzech]
	}
	if po == nil {
		return str
	}
	return po.Get(str, args...)
}

func renderMarkdown(src string) template.HTML {
	return template.HTML(blackfriday.Run([]byte(src))) // nolint:gosec
}

// escapeArgs keeps provider text and user input from injecting markup into
// the translated markdown.
func escapeArgs(args []any) []any {
	out := make([]any, len(args))
	for i, arg := range args {
		if s, ok := arg.(string); ok {
			out[i] = template.HTMLEscapeString(s)
			continue
		}
		out[i] = arg
	}
	return out
}

func (p *Page) render(ctx context.Context, w http.ResponseWriter, status int, view pageView) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := p.templates.ExecuteTemplate(buf, pageTemplate, view); err != nil {
		p.logger.ErrorContext(ctx, "render page failed", "template", pageTemplate, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

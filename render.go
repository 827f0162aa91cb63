package folio

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"html/template"
	"net/url"
	"strings"

	"github.com/alnah/go-folio/internal/assets"
	"github.com/alnah/go-folio/internal/pipeline"
)

// Renderer turns a Page into an HTML document with html/template. It is
// safe for concurrent use.
type Renderer struct {
	tmpl     *template.Template
	styles   assets.AssetLoader
	injector pipeline.CSSInjector
}

// RendererOption configures a Renderer.
type RendererOption func(*rendererConfig)

type rendererConfig struct {
	themePath string
}

// WithAssetPath layers a theme directory (styles/*.css, templates/page.html)
// over the embedded theme.
func WithAssetPath(path string) RendererOption {
	return func(c *rendererConfig) { c.themePath = path }
}

// NewRenderer loads and parses the page template.
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	var cfg rendererConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	resolver, err := assets.NewAssetResolver(cfg.themePath)
	if err != nil {
		return nil, err
	}

	src, err := resolver.LoadTemplate(assets.PageTemplateName)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(assets.PageTemplateName).Funcs(templateFuncs).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing: %v", ErrTemplate, err)
	}

	return &Renderer{tmpl: tmpl, styles: resolver, injector: &pipeline.CSSInjection{}}, nil
}

type renderData struct {
	Lang string
	Page *Page
}

// Render executes the page template and injects the theme stylesheet.
func (r *Renderer) Render(ctx context.Context, page *Page, theme Theme) (string, error) {
	if page == nil {
		return "", ErrNilPage
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	css, err := theme.stylesheet(r.styles)
	if err != nil {
		return "", err
	}

	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, renderData{Lang: lang, Page: page}); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplate, err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	return r.injector.InjectCSS(ctx, buf.String(), css), nil
}

var templateFuncs = template.FuncMap{
	"src":     imageSrc,
	"favicon": favicon,
}

// imageSrc trusts data:image/ URIs, which html/template would otherwise
// replace with #ZgotmplZ. Only used in <img src>, where images cannot run
// scripts. Everything else goes through normal URL escaping.
func imageSrc(s string) any {
	if strings.HasPrefix(s, "data:image/") {
		return template.URL(s) // #nosec G203 -- img context
	}
	return s
}

// favicon renders an emoji or short text icon as an SVG data URI. Values
// that look like URLs or paths are used as they are.
func favicon(icon string) any {
	if strings.ContainsAny(icon, "/.:") {
		return icon
	}
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">` +
		`<text y=".9em" font-size="90">` + html.EscapeString(icon) + `</text></svg>`
	return template.URL("data:image/svg+xml," + url.PathEscape(svg)) // #nosec G203 -- icon escaped twice
}

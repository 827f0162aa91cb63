package folio

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alnah/go-folio/internal/assets"
	"github.com/alnah/go-folio/internal/pipeline"
)

// Theme is passed to Render on every call; the renderer keeps no style
// state of its own.
type Theme struct {
	Style     string // built-in or custom style name; empty means default
	CSS       string // replaces Style when set
	Tokens    ThemeTokens
	Highlight string // chroma style for code blocks in quotes
	ExtraCSS  string // appended last
}

// ThemeTokens override the style's CSS custom properties.
type ThemeTokens struct {
	Accent     string
	Background string
	Text       string
	Muted      string
	Radius     string
	MaxWidth   string
}

// DefaultTheme returns the built-in default style.
func DefaultTheme() Theme {
	return Theme{Style: assets.DefaultStyleName}
}

// tokenPattern accepts colors, lengths and simple functions; nothing that
// ends a declaration or opens a block.
var tokenPattern = regexp.MustCompile(`^[#A-Za-z0-9(),.%\s-]*$`)

// Validate checks every token against tokenPattern.
func (t Theme) Validate() error {
	for _, tok := range t.Tokens.list() {
		if !tokenPattern.MatchString(tok.value) {
			return fmt.Errorf("%w: %s: %q", ErrInvalidTheme, tok.name, tok.value)
		}
	}
	return nil
}

type token struct {
	name  string
	value string
}

func (tt ThemeTokens) list() []token {
	return []token{
		{"accent", tt.Accent},
		{"background", tt.Background},
		{"text", tt.Text},
		{"muted", tt.Muted},
		{"radius", tt.Radius},
		{"max-width", tt.MaxWidth},
	}
}

// buildTokensCSS emits a :root rule for the non-empty tokens.
func buildTokensCSS(tt ThemeTokens) string {
	var b strings.Builder
	for _, tok := range tt.list() {
		if tok.value == "" {
			continue
		}
		fmt.Fprintf(&b, "  --%s: %s;\n", tok.name, strings.TrimSpace(tok.value))
	}
	if b.Len() == 0 {
		return ""
	}
	return "\n/* Theme tokens */\n:root {\n" + b.String() + "}\n"
}

// stylesheet assembles the page CSS: style, tokens, highlight, extra.
func (t Theme) stylesheet(loader assets.AssetLoader) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}

	base := t.CSS
	if base == "" {
		name := t.Style
		if name == "" {
			name = assets.DefaultStyleName
		}
		css, err := loader.LoadStyle(name)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidTheme, err)
		}
		base = css
	}

	highlight, err := pipeline.HighlightCSS(t.Highlight)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}

	var b strings.Builder
	b.WriteString(base)
	b.WriteString(buildTokensCSS(t.Tokens))
	b.WriteString("\n/* Code highlighting */\n")
	b.WriteString(highlight)
	if t.ExtraCSS != "" {
		b.WriteString("\n/* Extra */\n")
		b.WriteString(t.ExtraCSS)
	}
	return b.String(), nil
}

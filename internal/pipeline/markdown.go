package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrMarkdownConversion indicates a Markdown fragment could not be converted.
var ErrMarkdownConversion = errors.New("markdown conversion failed")

// Private Use Area markers for ==highlight== spans. Goldmark passes them
// through untouched, so <mark> is added after conversion without WithUnsafe.
const (
	markStart = "\uE000"
	markEnd   = "\uE001"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
	highlightPattern   = regexp.MustCompile(`==(.+?)==`)
)

// FragmentConverter turns short Markdown snippets into HTML fragments.
type FragmentConverter interface {
	ToFragment(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter converts Markdown using goldmark with GFM and chroma
// highlighting. Raw HTML in the input is dropped.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToFragment converts content to an HTML fragment. Empty or blank input
// yields an empty fragment. Goldmark has no context support, so the
// conversion runs in a goroutine and the caller stops waiting on cancel.
func (c *GoldmarkConverter) ToFragment(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	content = preprocess(content)
	if strings.TrimSpace(content) == "" {
		return "", nil
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrMarkdownConversion, err)}
			return
		}
		done <- result{html: strings.TrimSpace(convertMarks(buf.String()))}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// preprocess normalizes line endings, collapses runs of blank lines and
// swaps ==text== for highlight markers.
func preprocess(content string) string {
	content = crlfOrCR.ReplaceAllString(content, "\n")
	content = multipleBlankLines.ReplaceAllString(content, "\n\n")
	return highlightPattern.ReplaceAllString(content, markStart+"$1"+markEnd)
}

func convertMarks(s string) string {
	return strings.NewReplacer(markStart, "<mark>", markEnd, "</mark>").Replace(s)
}

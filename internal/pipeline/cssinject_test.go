package pipeline

import (
	"context"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestCSSInjection - Style placement
// ---------------------------------------------------------------------------

func TestCSSInjection_InjectCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		css  string
		want string
	}{
		{
			name: "before closing head",
			html: "<html><head><title>x</title></head><body></body></html>",
			css:  "p{}",
			want: "<html><head><title>x</title><style>p{}</style></head><body></body></html>",
		},
		{
			name: "uppercase head",
			html: "<HTML><HEAD></HEAD></HTML>",
			css:  "p{}",
			want: "<HTML><HEAD><style>p{}</style></HEAD></HTML>",
		},
		{
			name: "after body without head",
			html: `<body class="x"><p>hi</p></body>`,
			css:  "p{}",
			want: `<body class="x"><style>p{}</style><p>hi</p></body>`,
		},
		{
			name: "prepend for fragments",
			html: "<p>hi</p>",
			css:  "p{}",
			want: "<style>p{}</style><p>hi</p>",
		},
		{
			name: "empty css",
			html: "<p>hi</p>",
			css:  "",
			want: "<p>hi</p>",
		},
		{
			name: "style breakout escaped",
			html: "<p>hi</p>",
			css:  "p{}</style><script>x</script>",
			want: `<style>p{}<\/style><script>x<\/script></style><p>hi</p>`,
		},
	}

	injector := &CSSInjection{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := injector.InjectCSS(context.Background(), tt.html, tt.css); got != tt.want {
				t.Errorf("InjectCSS() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCSSInjection_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := (&CSSInjection{}).InjectCSS(ctx, "<p>x</p>", "p{}")
	if strings.Contains(got, "<style>") {
		t.Errorf("InjectCSS() on cancelled context injected css: %q", got)
	}
}

package folio

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

// Notes:
// - fakeRenderer stands in for Chrome so these tests run without a browser.

type fakeRenderer struct {
	mu      sync.Mutex
	calls   int
	seen    string // HTML read from the temp file during the call
	path    string
	err     error
	closed  int
	closeFn func() error
}

func (f *fakeRenderer) RenderFile(ctx context.Context, filePath string, format Format) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.path = filePath
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	f.seen = string(data)
	if f.err != nil {
		return nil, f.err
	}
	return []byte(string(format) + ":" + f.seen), nil
}

func (f *fakeRenderer) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	if f.closeFn != nil {
		return f.closeFn()
	}
	return nil
}

// ---------------------------------------------------------------------------
// TestParseFormat
// ---------------------------------------------------------------------------

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"pdf", FormatPDF, false},
		{"PNG", FormatPNG, false},
		{" png ", FormatPNG, false},
		{"jpg", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("ParseFormat(%q) error = %v, want ErrUnsupportedFormat", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}

	if FormatPDF.ContentType() != "application/pdf" || FormatPNG.ContentType() != "image/png" {
		t.Error("ContentType() mismatch")
	}
}

// ---------------------------------------------------------------------------
// TestSnapshotter - Temp file handoff
// ---------------------------------------------------------------------------

func TestSnapshotter_Snapshot(t *testing.T) {
	t.Parallel()

	fake := &fakeRenderer{}
	s := &Snapshotter{renderer: fake}

	out, err := s.Snapshot(context.Background(), "<p>hi</p>", FormatPNG)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if string(out) != "png:<p>hi</p>" {
		t.Errorf("Snapshot() = %q", out)
	}
	if !strings.HasSuffix(fake.path, ".html") {
		t.Errorf("temp file %q lacks .html extension", fake.path)
	}
	if _, err := os.Stat(fake.path); !os.IsNotExist(err) {
		t.Errorf("temp file %q not removed after snapshot", fake.path)
	}

	if err := s.Close(); err != nil || fake.closed != 1 {
		t.Errorf("Close() = %v, closed %d times", err, fake.closed)
	}
}

func TestSnapshotter_Errors(t *testing.T) {
	t.Parallel()

	fake := &fakeRenderer{err: ErrPageLoad}
	s := &Snapshotter{renderer: fake}

	if _, err := s.Snapshot(context.Background(), "<p/>", Format("gif")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Snapshot(gif) error = %v, want ErrUnsupportedFormat", err)
	}
	if fake.calls != 0 {
		t.Error("renderer called for an unsupported format")
	}

	if _, err := s.Snapshot(context.Background(), "<p/>", FormatPDF); !errors.Is(err, ErrPageLoad) {
		t.Errorf("Snapshot() error = %v, want ErrPageLoad", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Snapshot(ctx, "<p/>", FormatPDF); !errors.Is(err, context.Canceled) {
		t.Errorf("Snapshot(cancelled) error = %v, want context.Canceled", err)
	}
}

func TestSnapshotOptions_Panics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func()
	}{
		{"zero timeout", func() { WithTimeout(0) }},
		{"negative viewport", func() { WithViewport(-1, 10) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			defer func() {
				if recover() == nil {
					t.Errorf("%s did not panic", tt.name)
				}
			}()
			tt.fn()
		})
	}
}

func TestNewSnapshotter_Config(t *testing.T) {
	t.Parallel()

	s := NewSnapshotter(WithTimeout(5*time.Second), WithViewport(800, 600))
	r, ok := s.renderer.(*rodRenderer)
	if !ok {
		t.Fatalf("renderer = %T, want *rodRenderer", s.renderer)
	}
	if r.cfg.timeout != 5*time.Second || r.cfg.width != 800 || r.cfg.height != 600 {
		t.Errorf("cfg = %+v", r.cfg)
	}
	if r.browser != nil {
		t.Error("browser started before first snapshot")
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() without browser error = %v", err)
	}
}

func TestRodRenderer_ClosedDoesNotRelaunch(t *testing.T) {
	t.Parallel()

	r := &rodRenderer{}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	_, err := r.RenderFile(context.Background(), "unused.html", FormatPDF)
	if !errors.Is(err, ErrSnapshotterClosed) {
		t.Errorf("RenderFile() after Close error = %v, want ErrSnapshotterClosed", err)
	}
	if r.browser != nil || r.launcher != nil {
		t.Error("closed renderer launched a browser")
	}
}

func TestNeedsNoSandbox(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ROD_NO_SANDBOX", "")
	t.Setenv("ROD_BROWSER_BIN", "")
	if needsNoSandbox() {
		t.Error("needsNoSandbox() = true with clean environment")
	}

	t.Setenv("ROD_NO_SANDBOX", "1")
	if !needsNoSandbox() {
		t.Error("needsNoSandbox() = false with ROD_NO_SANDBOX=1")
	}
}

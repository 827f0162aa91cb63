package folio

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-folio/internal/fileutil"
	"github.com/alnah/go-folio/internal/process"
)

// Format selects the snapshot output.
type Format string

// Snapshot formats.
const (
	FormatPDF Format = "pdf"
	FormatPNG Format = "png"
)

// ParseFormat accepts "pdf" or "png", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPDF, FormatPNG:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (use pdf or png)", ErrUnsupportedFormat, s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "application/pdf"
}

// Snapshot defaults.
const (
	defaultSnapshotTimeout = 30 * time.Second
	defaultViewportWidth   = 1280
	defaultViewportHeight  = 800
)

// PDF page dimensions in inches (US Letter format).
const (
	paperWidthInches  = 8.5
	paperHeightInches = 11
	marginInches      = 0.4
)

// pageRenderer renders a local HTML file; replaced in tests.
type pageRenderer interface {
	RenderFile(ctx context.Context, filePath string, format Format) ([]byte, error)
	Close() error
}

type snapshotConfig struct {
	timeout time.Duration
	width   int
	height  int
}

// SnapshotOption configures a Snapshotter.
type SnapshotOption func(*snapshotConfig)

// WithTimeout sets the page load timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) SnapshotOption {
	if d <= 0 {
		panic("folio: WithTimeout duration must be positive")
	}
	return func(c *snapshotConfig) { c.timeout = d }
}

// WithViewport sets the browser viewport used for PNG snapshots.
// Panics if either dimension is not positive.
func WithViewport(width, height int) SnapshotOption {
	if width <= 0 || height <= 0 {
		panic("folio: WithViewport dimensions must be positive")
	}
	return func(c *snapshotConfig) {
		c.width = width
		c.height = height
	}
}

// Snapshotter renders HTML to PDF or PNG in headless Chrome. The browser
// starts on first use; Close releases it.
type Snapshotter struct {
	renderer pageRenderer
}

// NewSnapshotter creates a Snapshotter. No browser is started yet.
func NewSnapshotter(opts ...SnapshotOption) *Snapshotter {
	cfg := snapshotConfig{
		timeout: defaultSnapshotTimeout,
		width:   defaultViewportWidth,
		height:  defaultViewportHeight,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Snapshotter{renderer: &rodRenderer{cfg: cfg}}
}

// Snapshot renders html in the given format.
func (s *Snapshotter) Snapshot(ctx context.Context, html string, format Format) ([]byte, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(html, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshot, err)
	}
	defer cleanup()

	return s.renderer.RenderFile(ctx, tmpPath, format)
}

// Close stops the browser, if any.
func (s *Snapshotter) Close() error {
	return s.renderer.Close()
}

// rodRenderer drives Chrome through go-rod. Rod downloads Chromium on first
// run if no browser is found.
type rodRenderer struct {
	cfg      snapshotConfig
	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	closed   bool
}

// Compile-time interface check.
var _ pageRenderer = (*rodRenderer)(nil)

func (r *rodRenderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrSnapshotterClosed
	}
	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New()
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	if needsNoSandbox() {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		killLauncher(l)
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.launcher = l
	r.browser = browser
	return browser, nil
}

// needsNoSandbox reports whether Chrome must run without its sandbox: CI,
// containers with a preinstalled browser, or an explicit ROD_NO_SANDBOX=1.
func needsNoSandbox() bool {
	return os.Getenv("CI") == "true" ||
		os.Getenv("ROD_NO_SANDBOX") == "1" ||
		os.Getenv("ROD_BROWSER_BIN") != ""
}

func (r *rodRenderer) RenderFile(ctx context.Context, filePath string, format Format) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: fileURL(filePath)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	timeout := r.cfg.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	page = page.Context(ctx)

	if format == FormatPNG {
		if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:             r.cfg.width,
			Height:            r.cfg.height,
			DeviceScaleFactor: 1,
		}); err != nil {
			return nil, fmt.Errorf("%w: viewport: %v", ErrSnapshot, err)
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if format == FormatPNG {
		png, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
			Format: proto.PageCaptureScreenshotFormatPng,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: screenshot: %v", ErrSnapshot, err)
		}
		return png, nil
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paperWidthInches),
		PaperHeight:     floatPtr(paperHeightInches),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginInches),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: pdf: %v", ErrSnapshot, err)
	}

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrSnapshot, err)
	}
	return pdf, nil
}

// Close closes the browser and kills its process group so no Chrome
// helpers outlive the snapshotter. A closed renderer never launches again.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true

	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		killLauncher(r.launcher)
		r.launcher = nil
	}
	return err
}

func killLauncher(l *launcher.Launcher) {
	process.KillProcessGroup(l.PID())
	l.Kill()
}

// fileURL converts an absolute path to a file:// URL.
func fileURL(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

func floatPtr(v float64) *float64 {
	return &v
}

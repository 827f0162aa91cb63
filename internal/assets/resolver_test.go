package assets

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestAssetResolver - Custom-first with embedded fallback
// ---------------------------------------------------------------------------

func TestAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("embedded only", func(t *testing.T) {
		t.Parallel()

		r, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if r.HasCustomLoader() {
			t.Error("HasCustomLoader() = true, want false")
		}
		if _, err := r.LoadTemplate(PageTemplateName); err != nil {
			t.Errorf("LoadTemplate(page) error = %v", err)
		}
	})

	t.Run("custom overrides embedded", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "styles", "default.css"), "/* mine */")

		r, err := NewAssetResolver(dir)
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if !r.HasCustomLoader() {
			t.Error("HasCustomLoader() = false, want true")
		}

		css, err := r.LoadStyle(DefaultStyleName)
		if err != nil {
			t.Fatalf("LoadStyle(default) error = %v", err)
		}
		if css != "/* mine */" {
			t.Errorf("LoadStyle(default) = %q, want custom content", css)
		}
	})

	t.Run("falls back when custom is missing", func(t *testing.T) {
		t.Parallel()

		r, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}

		css, err := r.LoadStyle("midnight")
		if err != nil {
			t.Fatalf("LoadStyle(midnight) error = %v", err)
		}
		if !strings.Contains(css, "--accent") {
			t.Error("fallback did not return the embedded style")
		}
		if _, err := r.LoadStyle("nowhere"); !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle(nowhere) error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("invalid names are not masked by fallback", func(t *testing.T) {
		t.Parallel()

		r, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if _, err := r.LoadTemplate("../page"); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadTemplate(../page) error = %v, want ErrInvalidAssetName", err)
		}
	})

	t.Run("invalid custom path", func(t *testing.T) {
		t.Parallel()

		if _, err := NewAssetResolver("/nonexistent/theme/dir"); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("read errors surface", func(t *testing.T) {
		t.Parallel()

		if runtime.GOOS == "windows" || os.Getuid() == 0 {
			t.Skip("permission bits are not enforced here")
		}

		dir := t.TempDir()
		path := filepath.Join(dir, "styles", "locked.css")
		writeFile(t, path, "x")
		if err := os.Chmod(path, 0o000); err != nil {
			t.Fatalf("Chmod() error = %v", err)
		}
		t.Cleanup(func() { _ = os.Chmod(path, 0o644) })

		r, err := NewAssetResolver(dir)
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if _, err := r.LoadStyle("locked"); !errors.Is(err, ErrAssetRead) {
			t.Errorf("LoadStyle(locked) error = %v, want ErrAssetRead", err)
		}
	})
}

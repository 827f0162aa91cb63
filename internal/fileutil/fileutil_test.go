package fileutil_test

// Notes:
// - WriteTempFile write/close failures are not tested: triggering disk errors
//   is platform-specific.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-folio/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestWriteTempFile - Temp file lifecycle
// ---------------------------------------------------------------------------

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	t.Run("writes content and cleans up", func(t *testing.T) {
		t.Parallel()

		path, cleanup, err := fileutil.WriteTempFile("<html></html>", "html")
		if err != nil {
			t.Fatalf("WriteTempFile() error = %v", err)
		}
		if !strings.HasPrefix(filepath.Base(path), "folio-") || !strings.HasSuffix(path, ".html") {
			t.Errorf("path = %q, want folio-*.html", path)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if string(got) != "<html></html>" {
			t.Errorf("content = %q", got)
		}

		cleanup()
		cleanup()
		if fileutil.FileExists(path) {
			t.Error("file still exists after cleanup")
		}
	})

	t.Run("rejects bad extensions", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			ext     string
			wantErr error
		}{
			{"", fileutil.ErrExtensionEmpty},
			{"../x", fileutil.ErrExtensionPathTraversal},
			{"a\\b", fileutil.ErrExtensionPathTraversal},
			{"h\x00tml", fileutil.ErrExtensionPathTraversal},
		}
		for _, tt := range tests {
			_, _, err := fileutil.WriteTempFile("x", tt.ext)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("WriteTempFile(ext=%q) error = %v, want %v", tt.ext, err, tt.wantErr)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// TestFileExists / TestDirExists - Stat helpers
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "profile.png")
	if err := os.WriteFile(file, []byte("png"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if !fileutil.FileExists(file) {
		t.Error("FileExists(file) = false, want true")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists(dir) = true, want false")
	}
	if fileutil.FileExists(filepath.Join(dir, "missing.png")) {
		t.Error("FileExists(missing) = true, want false")
	}
}

func TestDirExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if !fileutil.DirExists(dir) {
		t.Error("DirExists(dir) = false, want true")
	}
	if fileutil.DirExists(file) {
		t.Error("DirExists(file) = true, want false")
	}
	if fileutil.DirExists(filepath.Join(dir, "extras")) {
		t.Error("DirExists(missing) = true, want false")
	}
}

// ---------------------------------------------------------------------------
// TestIsFilePath - String classification
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"default":        false,
		"dark-mode":      false,
		"./theme.css":    true,
		"themes/dark":    true,
		`C:\themes\dark`: true,
	}
	for in, want := range tests {
		if got := fileutil.IsFilePath(in); got != want {
			t.Errorf("IsFilePath(%q) = %v, want %v", in, got, want)
		}
	}
}

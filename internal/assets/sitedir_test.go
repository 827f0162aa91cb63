package assets

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// ---------------------------------------------------------------------------
// TestSiteDir - Contained reads from the portfolio asset directory
// ---------------------------------------------------------------------------

func newSiteDir(t *testing.T) (*SiteDir, string) {
	t.Helper()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "profile.png"), "png-bytes")
	writeFile(t, filepath.Join(dir, "gallery", "about.jpg"), "jpg-bytes")
	writeFile(t, filepath.Join(dir, "extras", "b.png"), "b")
	writeFile(t, filepath.Join(dir, "extras", "a.jpg"), "a")

	d, err := OpenSiteDir(dir)
	if err != nil {
		t.Fatalf("OpenSiteDir() error = %v", err)
	}
	return d, dir
}

func TestOpenSiteDir_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := OpenSiteDir(""); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("OpenSiteDir(\"\") error = %v, want ErrInvalidBasePath", err)
	}
	if _, err := OpenSiteDir(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("OpenSiteDir(missing) error = %v, want ErrInvalidBasePath", err)
	}
}

func TestSiteDir_ReadFile(t *testing.T) {
	t.Parallel()

	d, _ := newSiteDir(t)

	data, err := d.ReadFile("gallery/about.jpg")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "jpg-bytes" {
		t.Errorf("ReadFile() = %q", data)
	}

	tests := []struct {
		rel     string
		wantErr error
	}{
		{"cover.png", ErrAssetNotFound},
		{"extras", ErrAssetNotFound},
		{"../outside.png", ErrPathTraversal},
		{"", ErrInvalidAssetName},
	}
	for _, tt := range tests {
		if _, err := d.ReadFile(tt.rel); !errors.Is(err, tt.wantErr) {
			t.Errorf("ReadFile(%q) error = %v, want %v", tt.rel, err, tt.wantErr)
		}
	}
}

func TestSiteDir_ReadDir(t *testing.T) {
	t.Parallel()

	d, _ := newSiteDir(t)

	entries, err := d.ReadDir("extras")
	if err != nil {
		t.Fatalf("ReadDir(extras) error = %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("len(entries) = %d, want 2", len(entries))
	}

	if _, err := d.ReadDir("missing"); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("ReadDir(missing) error = %v, want ErrAssetNotFound", err)
	}
}

func TestSiteDir_ExistsAndFS(t *testing.T) {
	t.Parallel()

	d, dir := newSiteDir(t)

	if !d.Exists("profile.png") {
		t.Error("Exists(profile.png) = false")
	}
	if d.Exists("extras") || d.Exists("nope.png") || d.Exists("../x") {
		t.Error("Exists() true for directory, missing file or escape")
	}

	abs, err := d.Abs("profile.png")
	if err != nil {
		t.Fatalf("Abs() error = %v", err)
	}
	real, _ := filepath.EvalSymlinks(filepath.Join(dir, "profile.png"))
	if abs != real && abs != filepath.Join(dir, "profile.png") {
		t.Errorf("Abs() = %q, want %q", abs, real)
	}

	data, err := fs.ReadFile(d.FS(), "extras/a.jpg")
	if err != nil || string(data) != "a" {
		t.Errorf("fs.ReadFile(extras/a.jpg) = %q, %v", data, err)
	}
}

func TestSiteDir_SymlinkEscape(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on Windows")
	}

	d, dir := newSiteDir(t)
	outside := filepath.Join(t.TempDir(), "secret.png")
	writeFile(t, outside, "secret")
	if err := os.Symlink(outside, filepath.Join(dir, "cover.png")); err != nil {
		t.Fatalf("Symlink() error = %v", err)
	}

	if _, err := d.ReadFile("cover.png"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("ReadFile(symlink) error = %v, want ErrPathTraversal", err)
	}
	if d.Exists("cover.png") {
		t.Error("Exists(symlink out) = true")
	}
	if _, err := fs.ReadFile(d.FS(), "cover.png"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("FS ReadFile(symlink out) error = %v, want fs.ErrNotExist", err)
	}
}

func TestSiteDir_FSContainment(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on Windows")
	}

	d, dir := newSiteDir(t)
	outsideDir := t.TempDir()
	writeFile(t, filepath.Join(outsideDir, "secret.png"), "secret")
	if err := os.Symlink(outsideDir, filepath.Join(dir, "linked")); err != nil {
		t.Fatalf("Symlink() error = %v", err)
	}
	if err := os.Symlink(filepath.Join(dir, "profile.png"), filepath.Join(dir, "alias.png")); err != nil {
		t.Fatalf("Symlink() error = %v", err)
	}

	fsys := d.FS()
	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "directory symlink out", path: "linked/secret.png", wantErr: fs.ErrNotExist},
		{name: "dot-dot", path: "../secret.png", wantErr: fs.ErrInvalid},
		{name: "absolute", path: "/etc/passwd", wantErr: fs.ErrInvalid},
		{name: "missing", path: "nope.png", wantErr: fs.ErrNotExist},
		{name: "symlink inside", path: "alias.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fs.ReadFile(fsys, tt.path)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ReadFile(%q) error = %v", tt.path, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ReadFile(%q) error = %v, want %v", tt.path, err, tt.wantErr)
			}
		})
	}

	entries, err := fs.ReadDir(fsys, "extras")
	if err != nil || len(entries) != 2 {
		t.Errorf("ReadDir(extras) = %d entries, %v, want 2", len(entries), err)
	}
}

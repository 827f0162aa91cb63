package folio

import (
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", n, err)
		}
	}
}

func galleryNames(images []GalleryImage) []string {
	names := make([]string, len(images))
	for i, g := range images {
		names[i] = g.Name
	}
	return names
}

// ---------------------------------------------------------------------------
// TestDiscoverGalleryImages - Filtering and ordering
// ---------------------------------------------------------------------------

func TestDiscoverGalleryImages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files []string
		want  []string
	}{
		{
			name:  "empty folder",
			files: nil,
			want:  []string{},
		},
		{
			name:  "case-insensitive extensions, byte-order sort",
			files: []string{"b.png", "A.JPG", "a.jpg"},
			want:  []string{"A.JPG", "a.jpg", "b.png"},
		},
		{
			name:  "unsupported types filtered",
			files: []string{"x.gif", "y.jpg", "z.png"},
			want:  []string{"y.jpg", "z.png"},
		},
		{
			name:  "bare extension is a hidden file without extension",
			files: []string{".jpg", ".PNG", "..jpg", "a.jpg"},
			want:  []string{"..jpg", "a.jpg"},
		},
		{
			name:  "jpeg and mixed case",
			files: []string{"c.JpEg", "notes.txt", "b.PNG", ".hidden.jpg", "noext"},
			want:  []string{".hidden.jpg", "b.PNG", "c.JpEg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			touch(t, dir, tt.files...)

			got, err := DiscoverGalleryImages(dir)
			if err != nil {
				t.Fatalf("DiscoverGalleryImages() error = %v", err)
			}
			if names := galleryNames(got); !slices.Equal(names, tt.want) {
				t.Errorf("DiscoverGalleryImages() = %v, want %v", names, tt.want)
			}
		})
	}
}

func TestDiscoverGalleryImages_MissingFolder(t *testing.T) {
	t.Parallel()

	got, err := DiscoverGalleryImages(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("DiscoverGalleryImages(missing) error = %v, want nil", err)
	}
	if len(got) != 0 {
		t.Errorf("DiscoverGalleryImages(missing) = %v, want empty", got)
	}
}

func TestDiscoverGalleryImages_SkipsDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "album.jpg"), 0o755); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}
	touch(t, dir, "real.jpg")

	if runtime.GOOS != "windows" {
		if err := os.Symlink(filepath.Join(dir, "real.jpg"), filepath.Join(dir, "link.jpg")); err != nil {
			t.Fatalf("Symlink() error = %v", err)
		}
		if err := os.Symlink(filepath.Join(dir, "gone.jpg"), filepath.Join(dir, "dangling.jpg")); err != nil {
			t.Fatalf("Symlink() error = %v", err)
		}
	}

	got, err := DiscoverGalleryImages(dir)
	if err != nil {
		t.Fatalf("DiscoverGalleryImages() error = %v", err)
	}

	want := []string{"link.jpg", "real.jpg"}
	if runtime.GOOS == "windows" {
		want = []string{"real.jpg"}
	}
	if names := galleryNames(got); !slices.Equal(names, want) {
		t.Errorf("DiscoverGalleryImages() = %v, want %v", names, want)
	}
}

func TestDiscoverGalleryImages_Fresh(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, dir, "a.png")

	first, _ := DiscoverGalleryImages(dir)
	touch(t, dir, "b.png")
	second, _ := DiscoverGalleryImages(dir)

	if len(first) != 1 || len(second) != 2 {
		t.Errorf("listings = %d then %d, want 1 then 2", len(first), len(second))
	}
}

func TestDiscoverGalleryImages_Fields(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, dir, "night_sky-02.jpg")

	got, err := DiscoverGalleryImages(dir)
	if err != nil || len(got) != 1 {
		t.Fatalf("DiscoverGalleryImages() = %v, %v", got, err)
	}
	if got[0].Path != filepath.Join(dir, "night_sky-02.jpg") {
		t.Errorf("Path = %q", got[0].Path)
	}
	if got[0].Alt != "Night Sky 02" {
		t.Errorf("Alt = %q, want %q", got[0].Alt, "Night Sky 02")
	}
}

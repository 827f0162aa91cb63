package folio

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// galleryExtensions are matched case-insensitively.
var galleryExtensions = []string{".jpg", ".jpeg", ".png"}

// GalleryImage is one image found in the extras folder.
type GalleryImage struct {
	Name string // file name, also the path relative to the folder
	Path string // folder joined with Name
	Alt  string // derived from Name
}

// DiscoverGalleryImages lists the .jpg, .jpeg and .png files in folder,
// sorted by file name in byte order. A missing folder yields no images and
// no error. Every call reads the directory again.
func DiscoverGalleryImages(folder string) ([]GalleryImage, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []GalleryImage{}, nil
		}
		return nil, err
	}

	return collectGallery(folder, entries, func(name string) bool {
		info, err := os.Stat(filepath.Join(folder, name))
		return err == nil && info.Mode().IsRegular()
	}), nil
}

// collectGallery keeps the gallery files among entries, sorted by name.
// linkIsFile decides whether a symlink entry counts as a regular file.
func collectGallery(folder string, entries []fs.DirEntry, linkIsFile func(name string) bool) []GalleryImage {
	images := make([]GalleryImage, 0, len(entries))
	for _, e := range entries {
		if !isGalleryFile(e.Name()) || !isRegularFile(e, linkIsFile) {
			continue
		}
		images = append(images, GalleryImage{
			Name: e.Name(),
			Path: filepath.Join(folder, e.Name()),
			Alt:  altText(e.Name()),
		})
	}

	slices.SortFunc(images, func(a, b GalleryImage) int {
		return strings.Compare(a.Name, b.Name)
	})
	return images
}

// isGalleryFile matches the extension case-insensitively. A name that is
// only an extension, such as ".jpg", is a hidden file with no extension.
func isGalleryFile(name string) bool {
	ext := filepath.Ext(name)
	if ext == name {
		return false
	}
	return slices.Contains(galleryExtensions, strings.ToLower(ext))
}

// isRegularFile defers symlinks to linkIsFile; a dangling link is skipped.
func isRegularFile(e fs.DirEntry, linkIsFile func(name string) bool) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	return linkIsFile(e.Name())
}

// altText turns "night_sky-02.jpg" into "Night Sky 02". Casers keep state,
// so each call gets its own.
func altText(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(base)
	return cases.Title(language.Und).String(strings.Join(strings.Fields(base), " "))
}

package assets

import (
	"fmt"
	"io/fs"
	"os"
)

// SiteDir is the portfolio asset directory. Paths passed to its methods are
// relative, slash-separated, and may not leave the directory.
type SiteDir struct {
	base root
}

// OpenSiteDir opens basePath as a site asset directory.
// Returns ErrInvalidBasePath if it is not a readable directory.
func OpenSiteDir(basePath string) (*SiteDir, error) {
	r, err := openRoot(basePath)
	if err != nil {
		return nil, err
	}
	return &SiteDir{base: r}, nil
}

// Path returns the absolute base directory.
func (d *SiteDir) Path() string {
	return string(d.base)
}

// Abs returns the absolute path of rel after validation.
func (d *SiteDir) Abs(rel string) (string, error) {
	if err := ValidateRelPath(rel); err != nil {
		return "", err
	}
	return d.base.join(rel)
}

// ReadFile reads rel. A missing file or a directory in its place is
// ErrAssetNotFound; any other failure is ErrAssetRead.
func (d *SiteDir) ReadFile(rel string) ([]byte, error) {
	full, err := d.Abs(rel)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, rel)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrAssetRead, rel, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrAssetNotFound, rel)
	}

	data, err := os.ReadFile(full) // #nosec G304 -- path validated above
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrAssetRead, rel, err)
	}
	return data, nil
}

// ReadDir lists rel. A missing folder is ErrAssetNotFound.
func (d *SiteDir) ReadDir(rel string) ([]fs.DirEntry, error) {
	full, err := d.Abs(rel)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, rel)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrAssetRead, rel, err)
	}
	return entries, nil
}

// Exists reports whether rel names an existing regular file.
func (d *SiteDir) Exists(rel string) bool {
	full, err := d.Abs(rel)
	if err != nil {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && !info.IsDir()
}

// FS exposes the directory as an fs.FS for static file serving. Opens go
// through the same containment check as ReadFile: a name, or a symlink along
// it, that resolves outside the directory reports fs.ErrNotExist.
func (d *SiteDir) FS() fs.FS {
	return siteFS{base: d.base}
}

type siteFS struct {
	base root
}

func (f siteFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	full, err := f.base.join(name)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	file, err := os.Open(full) // #nosec G304 -- path contained above
	if err != nil {
		return nil, err
	}
	return file, nil
}

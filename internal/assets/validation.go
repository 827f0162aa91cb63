package assets

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// ValidateAssetName checks that a theme asset name is a bare filename stem:
// no separators, no dots.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// ValidateRelPath checks that a site asset path is relative and stays inside
// its base once cleaned. Forward slashes are the canonical separator.
func ValidateRelPath(rel string) error {
	if rel == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidAssetName)
	}
	if strings.ContainsRune(rel, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, rel)
	}
	slashed := filepath.ToSlash(rel)
	if path.IsAbs(slashed) || filepath.IsAbs(rel) || filepath.VolumeName(rel) != "" {
		return fmt.Errorf("%w: absolute path %q", ErrPathTraversal, rel)
	}
	cleaned := path.Clean(slashed)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("%w: %q", ErrPathTraversal, rel)
	}
	return nil
}

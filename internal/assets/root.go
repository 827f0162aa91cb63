package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// root is an absolute, symlink-resolved directory that file reads may not escape.
type root string

// openRoot validates basePath as a readable directory.
func openRoot(basePath string) (root, error) {
	if basePath == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	// Containment checks compare resolved paths, so the base must be resolved too.
	if realPath, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}
	if _, err := os.ReadDir(absPath); err != nil {
		return "", fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return root(absPath), nil
}

// join returns the absolute path of rel under r after checking containment.
func (r root) join(rel string) (string, error) {
	full := filepath.Join(string(r), filepath.FromSlash(rel))
	if err := r.contains(full); err != nil {
		return "", err
	}
	return full, nil
}

// contains ensures filePath resolves (following symlinks) to a location under r.
func (r root) contains(filePath string) error {
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}

	// A missing file cannot be resolved; the prefix check still applies and
	// the read that follows reports it as not found.
	if realPath, err := filepath.EvalSymlinks(absFilePath); err == nil {
		absFilePath = realPath
	}

	base := string(r)
	if absFilePath == base {
		return nil
	}
	// Separator suffix prevents /base/path matching /base/pathevil.
	if !strings.HasPrefix(absFilePath, base+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}
	return nil
}

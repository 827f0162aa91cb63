package folio

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmbeddedDocument = errors.New("embedded document unavailable")
	ErrInvalidBaseDir   = errors.New("invalid asset directory")
	ErrNilPage          = errors.New("page cannot be nil")
	ErrTemplate         = errors.New("page template failed")
	ErrInvalidTheme     = errors.New("invalid theme")

	// Browser errors.
	ErrBrowserConnect    = errors.New("failed to connect to browser")
	ErrPageCreate        = errors.New("failed to create browser page")
	ErrPageLoad          = errors.New("failed to load page")
	ErrSnapshot          = errors.New("snapshot failed")
	ErrUnsupportedFormat = errors.New("unsupported snapshot format")
	ErrPoolClosed        = errors.New("snapshot pool closed")
	ErrSnapshotterClosed = errors.New("snapshotter closed")
)

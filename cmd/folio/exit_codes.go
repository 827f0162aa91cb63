package main

import (
	"context"
	"errors"
	"os"

	folio "github.com/alnah/go-folio"
	"github.com/alnah/go-folio/internal/assets"
	"github.com/alnah/go-folio/internal/config"
	"github.com/alnah/go-folio/internal/hints"
)

// Exit codes for the folio CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command completed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Missing asset directory or document, unwritable output
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the exit code for err.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, folio.ErrBrowserConnect) ||
		errors.Is(err, folio.ErrPageCreate) ||
		errors.Is(err, folio.ErrPageLoad) ||
		errors.Is(err, folio.ErrSnapshot) {
		return ExitBrowser
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, folio.ErrEmbeddedDocument) ||
		errors.Is(err, folio.ErrInvalidBaseDir) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidToken) ||
		errors.Is(err, config.ErrInvalidURL) ||
		errors.Is(err, config.ErrInvalidLayout) ||
		errors.Is(err, config.ErrInvalidDate) ||
		errors.Is(err, folio.ErrInvalidTheme) ||
		errors.Is(err, folio.ErrUnsupportedFormat) ||
		errors.Is(err, folio.ErrTemplate) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, ErrOutputExists) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintedError carries advice that needs command context, such as the
// configured embed path.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() + e.hint }
func (e *hintedError) Unwrap() error { return e.err }

func withHint(err error, hint string) error {
	if err == nil || hint == "" {
		return err
	}
	return &hintedError{err: err, hint: hint}
}

// formatError renders err, adding a hint for failures users can fix.
func formatError(err error) string {
	msg := "error: " + err.Error()

	var he *hintedError
	if errors.As(err, &he) {
		return msg
	}

	switch {
	case errors.Is(err, folio.ErrInvalidBaseDir):
		msg += hints.ForAssetDir()
	case errors.Is(err, folio.ErrBrowserConnect):
		msg += hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		msg += hints.ForTimeout()
	case errors.Is(err, ErrWriteOutput):
		msg += hints.ForOutputFile()
	}
	return msg
}

package main

import (
	"context"
	"fmt"
	"time"

	folio "github.com/alnah/go-folio"
)

// snapshotter is the part of *folio.Snapshotter the command uses.
type snapshotter interface {
	Snapshot(ctx context.Context, html string, format folio.Format) ([]byte, error)
	Close() error
}

// newSnapshotter is replaced in tests.
var newSnapshotter = func(opts ...folio.SnapshotOption) snapshotter {
	return folio.NewSnapshotter(opts...)
}

// runSnapshot renders the page in headless Chrome and writes a PDF or PNG.
func runSnapshot(ctx context.Context, args []string, env *Environment) error {
	var f snapshotFlags
	if err := parse(snapshotFlagSet(&f, env.Stderr), args); err != nil {
		return helpIsSuccess(err)
	}

	format, err := folio.ParseFormat(f.format)
	if err != nil {
		return err
	}
	if f.timeout <= 0 || f.width <= 0 || f.height <= 0 {
		return fmt.Errorf("%w: --timeout, --width and --height must be positive", ErrUsage)
	}
	output := f.output
	if output == "" {
		output = "portfolio." + string(format)
	}

	s, err := loadSite(f.common, env)
	if err != nil {
		return err
	}

	// Chrome opens the page from a temp file, so images are always inlined.
	html, err := renderSite(ctx, s,
		folio.WithClock(env.Now),
		folio.WithDocumentBase(s.fileDocumentBase()),
	)
	if err != nil {
		return err
	}

	snap := newSnapshotter(folio.WithTimeout(f.timeout), folio.WithViewport(f.width, f.height))
	defer func() { _ = snap.Close() }()

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	start := time.Now()
	data, err := snap.Snapshot(ctx, html, format)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	s.logger.Debug("snapshot taken", "format", format, "bytes", len(data), "duration", time.Since(start))

	if err := writeOutput(output, data, env.Stdout); err != nil {
		return err
	}
	if !f.common.quiet && output != stdoutPath {
		fmt.Fprintf(env.Stdout, "Created %s\n", output)
	}
	return nil
}

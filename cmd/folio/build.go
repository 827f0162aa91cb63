package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	flag "github.com/spf13/pflag"

	folio "github.com/alnah/go-folio"
	"github.com/alnah/go-folio/internal/fileutil"
)

// Sentinel errors for output files.
var (
	ErrWriteOutput  = errors.New("failed to write output")
	ErrOutputExists = errors.New("output file already exists")
)

// File permission constants.
const filePermissions = 0o644 // rw-r--r--: owner read+write, others read

// stdoutPath selects standard output for -o.
const stdoutPath = "-"

// runBuild writes the page as a standalone HTML file.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	var f buildFlags
	if err := parse(buildFlagSet(&f, env.Stderr), args); err != nil {
		return helpIsSuccess(err)
	}

	s, err := loadSite(f.common, env)
	if err != nil {
		return err
	}

	opts := []folio.AssemblerOption{
		folio.WithClock(env.Now),
		folio.WithDocumentBase(s.fileDocumentBase()),
	}
	if f.linked {
		prefix, err := linkPrefix(f.output, s.baseDir)
		if err != nil {
			return err
		}
		opts = append(opts, folio.WithLinkedImages(prefix))
	}

	start := time.Now()
	html, err := renderSite(ctx, s, opts...)
	if err != nil {
		return err
	}

	if err := writeOutput(f.output, []byte(html), env.Stdout); err != nil {
		return err
	}
	s.logger.Debug("page built", "output", f.output, "bytes", len(html), "duration", time.Since(start))
	if !f.common.quiet && f.output != stdoutPath {
		fmt.Fprintf(env.Stdout, "Created %s\n", f.output)
	}
	return nil
}

// renderSite builds and renders one page with a fresh assembler and renderer.
func renderSite(ctx context.Context, s *site, opts ...folio.AssemblerOption) (string, error) {
	asm, err := s.assembler(opts...)
	if err != nil {
		return "", err
	}
	r, err := s.renderer()
	if err != nil {
		return "", err
	}
	return s.render(ctx, asm, r)
}

// linkPrefix returns the asset directory relative to the output file's
// folder, so linked images resolve when the HTML is opened from disk.
func linkPrefix(output, baseDir string) (string, error) {
	from := "."
	if output != stdoutPath {
		from = filepath.Dir(output)
	}
	absFrom, err := filepath.Abs(from)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	rel, err := filepath.Rel(absFrom, baseDir)
	if err != nil {
		return "", fmt.Errorf("%w: asset directory not reachable from %s: %v", ErrUsage, from, err)
	}
	return filepath.ToSlash(rel), nil
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == stdoutPath {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	}

	if dir := filepath.Dir(path); !fileutil.DirExists(dir) {
		return fmt.Errorf("%w: directory %s does not exist", ErrWriteOutput, dir)
	}
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// helpIsSuccess turns the -h/--help parse result into a clean exit.
func helpIsSuccess(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}

package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"

	folio "github.com/alnah/go-folio"
)

// ErrUsage marks invalid flags or arguments.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared by commands that load a site.
type commonFlags struct {
	config    string
	assets    string
	themePath string
	quiet     bool
	verbose   bool
}

// buildFlags holds flags for the build command.
type buildFlags struct {
	common commonFlags
	output string
	linked bool
}

// snapshotFlags holds flags for the snapshot command.
type snapshotFlags struct {
	common  commonFlags
	output  string
	format  string
	timeout time.Duration
	width   int
	height  int
}

// serveFlags holds flags for the serve command. Unset flags fall back to
// the FOLIO_* environment.
type serveFlags struct {
	common  commonFlags
	addr    string
	workers int
	linked  bool
	noPDF   bool
}

// initFlags holds flags for the init command.
type initFlags struct {
	output string
	force  bool
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	common commonFlags
	json   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.assets, "assets", "a", "", "asset directory (overrides assets.basePath)")
	fs.StringVar(&f.themePath, "theme-path", "", "directory with styles/ and templates/ overrides")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log missing assets and timings")
}

func newFlagSet(name string, usage func(io.Writer), stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { usage(stderr) }
	return fs
}

// parse runs fs and rejects positional arguments. flag.ErrHelp passes
// through after pflag has printed the usage.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: %s takes no arguments, got %q", ErrUsage, fs.Name(), fs.Arg(0))
	}
	return nil
}

func buildFlagSet(f *buildFlags, stderr io.Writer) *flag.FlagSet {
	fs := newFlagSet("build", printBuildUsage, stderr)
	fs.StringVarP(&f.output, "output", "o", "portfolio.html", "output HTML file (- for stdout)")
	fs.BoolVar(&f.linked, "linked", false, "reference images by path instead of inlining them")
	addCommonFlags(fs, &f.common)
	return fs
}

func snapshotFlagSet(f *snapshotFlags, stderr io.Writer) *flag.FlagSet {
	fs := newFlagSet("snapshot", printSnapshotUsage, stderr)
	fs.StringVarP(&f.output, "output", "o", "", "output file (default portfolio.<format>)")
	fs.StringVarP(&f.format, "format", "f", string(folio.FormatPDF), "output format: pdf, png")
	fs.DurationVarP(&f.timeout, "timeout", "t", 30*time.Second, "page load timeout")
	fs.IntVar(&f.width, "width", 1280, "viewport width for png")
	fs.IntVar(&f.height, "height", 800, "viewport height for png")
	addCommonFlags(fs, &f.common)
	return fs
}

func serveFlagSet(f *serveFlags, stderr io.Writer) *flag.FlagSet {
	fs := newFlagSet("serve", printServeUsage, stderr)
	fs.StringVar(&f.addr, "addr", "", "listen address (default $FOLIO_ADDR or :8080)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "browser pool size for /portfolio.pdf (0 = auto)")
	fs.BoolVar(&f.linked, "linked", false, "serve images from /assets instead of inlining them")
	fs.BoolVar(&f.noPDF, "no-pdf", false, "disable /portfolio.pdf")
	addCommonFlags(fs, &f.common)
	return fs
}

func initFlagSet(f *initFlags, stderr io.Writer) *flag.FlagSet {
	fs := newFlagSet("init", printInitUsage, stderr)
	fs.StringVarP(&f.output, "output", "o", "folio.yaml", "config file to write")
	fs.BoolVar(&f.force, "force", false, "overwrite an existing file")
	return fs
}

func doctorFlagSet(f *doctorFlags, stderr io.Writer) *flag.FlagSet {
	fs := newFlagSet("doctor", printDoctorUsage, stderr)
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	addCommonFlags(fs, &f.common)
	return fs
}

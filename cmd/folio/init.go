package main

import (
	"fmt"

	"github.com/alnah/go-folio/internal/config"
	"github.com/alnah/go-folio/internal/fileutil"
)

// runInit writes a starter folio.yaml.
func runInit(args []string, env *Environment) error {
	var f initFlags
	if err := parse(initFlagSet(&f, env.Stderr), args); err != nil {
		return helpIsSuccess(err)
	}

	if f.output != stdoutPath && fileutil.FileExists(f.output) && !f.force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrOutputExists, f.output)
	}

	data, err := config.Scaffold()
	if err != nil {
		return err
	}
	if err := writeOutput(f.output, data, env.Stdout); err != nil {
		return err
	}
	if f.output != stdoutPath {
		fmt.Fprintf(env.Stdout, "Created %s\n", f.output)
	}
	return nil
}

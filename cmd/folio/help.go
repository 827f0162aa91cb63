package main

import (
	"fmt"
	"io"

	"github.com/alnah/go-folio/internal/server"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: folio <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range getCommands() {
		fmt.Fprintf(w, "  %-12s %s\n", c.Name, c.Desc)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'folio help <command>' for details on a specific command.")
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (default: folio.yaml if present)")
	fmt.Fprintln(w, "  -a, --assets <dir>        Asset directory (overrides assets.basePath)")
	fmt.Fprintln(w, "      --theme-path <dir>    Directory with styles/ and templates/ overrides")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log missing assets and timings")
}

func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: folio build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assemble the portfolio page and write it as a standalone HTML file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file, - for stdout (default: portfolio.html)")
	fmt.Fprintln(w, "      --linked              Reference images by path instead of inlining them")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

func printSnapshotUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: folio snapshot [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render the portfolio in headless Chrome and save it as PDF or PNG.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: portfolio.<format>)")
	fmt.Fprintln(w, "  -f, --format <s>          pdf or png (default: pdf)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Page load timeout, e.g. 30s, 2m")
	fmt.Fprintln(w, "      --width <n>           PNG viewport width (default: 1280)")
	fmt.Fprintln(w, "      --height <n>          PNG viewport height (default: 800)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: folio serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the portfolio over HTTP. Each request rebuilds the page.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "      --addr <host:port>    Listen address")
	fmt.Fprintln(w, "  -w, --workers <n>         Browser pool size for /portfolio.pdf (0 = auto)")
	fmt.Fprintln(w, "      --linked              Serve images from /assets instead of inlining them")
	fmt.Fprintln(w, "      --no-pdf              Disable /portfolio.pdf")
	fmt.Fprintln(w)
	printCommonUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment (also read from .env):")
	fmt.Fprintln(w, server.EnvUsage())
}

func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: folio init [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write a starter folio.yaml with every setting at its default.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -o, --output <path>       Config file to write (default: folio.yaml)")
	fmt.Fprintln(w, "      --force               Overwrite an existing file")
}

func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: folio doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Chrome, the environment and the asset directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --json                Print the report as JSON")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "snapshot":
		printSnapshotUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "init":
		printInitUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: folio version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: folio help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}

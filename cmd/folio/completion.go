package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType is the completion type of a flag.
type flagType int

const (
	flagString flagType = iota
	flagBool
	flagEnum
	flagFile
	flagDir
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string
	Short    string
	Type     flagType
	Desc     string
	Values   []string
	FileGlob string
}

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
	Args  []string // fixed positional values, e.g. shells
}

// completionMeta holds completion hints that a FlagSet cannot express.
type completionMeta struct {
	Values   []string
	FileGlob string
	IsDir    bool
}

// flagCompletionMeta maps flag names to their completion metadata.
// Names, descriptions and types come from the FlagSets.
var flagCompletionMeta = map[string]completionMeta{
	"format":     {Values: []string{"pdf", "png"}},
	"config":     {FileGlob: "*.yaml,*.yml"},
	"assets":     {IsDir: true},
	"theme-path": {IsDir: true},
}

// extractFlags converts a FlagSet to flag definitions.
func extractFlags(fs *flag.FlagSet) []flagDef {
	var flags []flagDef
	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{Long: f.Name, Short: f.Shorthand, Desc: f.Usage}
		if f.Value.Type() == "bool" {
			fd.Type = flagBool
		}
		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type, fd.Values = flagEnum, meta.Values
			case meta.FileGlob != "":
				fd.Type, fd.FileGlob = flagFile, meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}
		flags = append(flags, fd)
	})
	return flags
}

// getCommands returns the command registry. Flags are read from the same
// FlagSets the commands parse with.
func getCommands() []commandDef {
	return []commandDef{
		{Name: "build", Desc: "Write the portfolio as a standalone HTML file", Flags: extractFlags(buildFlagSet(&buildFlags{}, io.Discard))},
		{Name: "snapshot", Desc: "Save the portfolio as PDF or PNG", Flags: extractFlags(snapshotFlagSet(&snapshotFlags{}, io.Discard))},
		{Name: "serve", Desc: "Serve the portfolio over HTTP", Flags: extractFlags(serveFlagSet(&serveFlags{}, io.Discard))},
		{Name: "init", Desc: "Write a starter folio.yaml", Flags: extractFlags(initFlagSet(&initFlags{}, io.Discard))},
		{Name: "doctor", Desc: "Check Chrome, environment and assets", Flags: extractFlags(doctorFlagSet(&doctorFlags{}, io.Discard))},
		{Name: "completion", Desc: "Generate shell completion script", Args: []string{"bash", "zsh", "fish", "powershell"}},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes a completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	case ShellPowerShell:
		return generatePowerShell(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
}

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

func generateBash(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# bash completion for folio\n")
	b.WriteString("_folio() {\n")
	b.WriteString("  local cur prev cmd\n")
	b.WriteString("  cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("  prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("  cmd=\"${COMP_WORDS[1]}\"\n\n")
	fmt.Fprintf(&b, "  if [[ $COMP_CWORD -eq 1 ]]; then\n    COMPREPLY=($(compgen -W %q -- \"$cur\"))\n    return\n  fi\n\n",
		strings.Join(commandNames(cmds), " "))

	b.WriteString("  case \"$prev\" in\n")
	seen := map[string]bool{}
	for _, c := range cmds {
		for _, f := range c.Flags {
			if seen[f.Long] || (f.Type != flagEnum && f.Type != flagFile && f.Type != flagDir) {
				continue
			}
			seen[f.Long] = true
			pattern := "--" + f.Long
			if f.Short != "" {
				pattern += "|-" + f.Short
			}
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(&b, "    %s) COMPREPLY=($(compgen -W %q -- \"$cur\")); return ;;\n", pattern, strings.Join(f.Values, " "))
			case flagDir:
				fmt.Fprintf(&b, "    %s) COMPREPLY=($(compgen -d -- \"$cur\")); return ;;\n", pattern)
			default:
				fmt.Fprintf(&b, "    %s) COMPREPLY=($(compgen -f -- \"$cur\")); return ;;\n", pattern)
			}
		}
	}
	b.WriteString("  esac\n\n")

	b.WriteString("  case \"$cmd\" in\n")
	for _, c := range cmds {
		words := c.Args
		for _, f := range c.Flags {
			words = append(words, "--"+f.Long)
		}
		if len(words) == 0 {
			continue
		}
		fmt.Fprintf(&b, "    %s) COMPREPLY=($(compgen -W %q -- \"$cur\")) ;;\n", c.Name, strings.Join(words, " "))
	}
	b.WriteString("  esac\n")
	b.WriteString("}\n")
	b.WriteString("complete -F _folio folio\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func generateZsh(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("#compdef folio\n\n")
	b.WriteString("_folio() {\n")
	b.WriteString("  local -a commands\n  commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "    '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("  )\n\n")
	b.WriteString("  if (( CURRENT == 2 )); then\n    _describe 'command' commands\n    return\n  fi\n\n")
	b.WriteString("  case \"$words[2]\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 && len(c.Args) == 0 {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n      _arguments \\\n", c.Name)
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "        '--%s[%s]%s' \\\n", f.Long, zshEscape(f.Desc), zshAction(f))
		}
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "        '1:shell:(%s)' \\\n", strings.Join(c.Args, " "))
		}
		b.WriteString("        && return\n      ;;\n")
	}
	b.WriteString("  esac\n}\n\n_folio \"$@\"\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func zshAction(f flagDef) string {
	switch f.Type {
	case flagBool:
		return ""
	case flagEnum:
		return ":value:(" + strings.Join(f.Values, " ") + ")"
	case flagDir:
		return ":directory:_files -/"
	case flagFile:
		globs := strings.Split(f.FileGlob, ",")
		return ":file:_files -g \"" + strings.Join(globs, " ") + "\""
	default:
		return ":value:"
	}
}

func zshEscape(s string) string {
	r := strings.NewReplacer("'", "'\\''", "[", "\\[", "]", "\\]", ":", "\\:")
	return r.Replace(s)
}

func generateFish(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# fish completion for folio\n")
	b.WriteString("complete -c folio -f\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c folio -n '__fish_use_subcommand' -a %s -d %s\n", c.Name, fishQuote(c.Desc))
	}
	for _, c := range cmds {
		cond := fmt.Sprintf("__fish_seen_subcommand_from %s", c.Name)
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c folio -n '%s' -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagEnum:
				line += " -xa " + fishQuote(strings.Join(f.Values, " "))
			case flagFile, flagDir:
				line += " -rF"
			case flagString:
				line += " -r"
			}
			line += " -d " + fishQuote(f.Desc)
			b.WriteString(line + "\n")
		}
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "complete -c folio -n '%s' -a %s\n", cond, fishQuote(strings.Join(c.Args, " ")))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func fishQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

func generatePowerShell(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# PowerShell completion for folio\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName folio -ScriptBlock {\n")
	b.WriteString("  param($wordToComplete, $commandAst, $cursorPosition)\n")
	b.WriteString("  $words = $commandAst.CommandElements | ForEach-Object { $_.ToString() }\n")
	b.WriteString("  $flags = @{\n")

	names := commandNames(cmds)
	sort.Strings(names)
	byName := map[string]commandDef{}
	for _, c := range cmds {
		byName[c.Name] = c
	}
	for _, name := range names {
		c := byName[name]
		words := append([]string{}, c.Args...)
		for _, f := range c.Flags {
			words = append(words, "--"+f.Long)
		}
		quoted := make([]string, len(words))
		for i, wd := range words {
			quoted[i] = "'" + wd + "'"
		}
		fmt.Fprintf(&b, "    '%s' = @(%s)\n", name, strings.Join(quoted, ", "))
	}
	b.WriteString("  }\n")
	b.WriteString("  if ($words.Count -le 2 -and -not $wordToComplete.StartsWith('-')) {\n")
	b.WriteString("    $candidates = $flags.Keys\n")
	b.WriteString("  } else {\n")
	b.WriteString("    $candidates = $flags[$words[1]]\n")
	b.WriteString("  }\n")
	b.WriteString("  $candidates | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("    [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("  }\n")
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: folio completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w, "  Bash:        eval \"$(folio completion bash)\"         # in ~/.bashrc")
	fmt.Fprintln(w, "  Zsh:         eval \"$(folio completion zsh)\"          # in ~/.zshrc, before compinit")
	fmt.Fprintln(w, "  Fish:        folio completion fish > ~/.config/fish/completions/folio.fish")
	fmt.Fprintln(w, "  PowerShell:  folio completion powershell | Out-String | Invoke-Expression")
}

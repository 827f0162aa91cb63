package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	folio "github.com/alnah/go-folio"
	"github.com/alnah/go-folio/internal/assets"
	"github.com/alnah/go-folio/internal/pipeline"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"`
	Chrome   chromeInfo `json:"chrome"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Site     siteInfo   `json:"site"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// siteInfo reports which layout entries exist in the asset directory.
type siteInfo struct {
	Config   string          `json:"config,omitempty"`
	BaseDir  string          `json:"base_dir"`
	Embed    bool            `json:"embed"`
	Slots    map[string]bool `json:"slots"`
	Extras   int             `json:"extras"`
	Loadable bool            `json:"loadable"`
	Style    string          `json:"style,omitempty"`
	Code     string          `json:"highlight,omitempty"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	var f doctorFlags
	if err := parse(doctorFlagSet(&f, env.Stderr), args); err != nil {
		if helpIsSuccess(err) == nil {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, formatError(err))
		return ExitUsage
	}

	result := runDoctor(f.common, env)

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(f commonFlags, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(result)
	checkEnvironment(result)
	checkSystem(result)
	checkSite(result, f, env)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}
	return result
}

// checkChrome detects Chrome/Chromium. A missing browser only blocks
// snapshots and /portfolio.pdf, so it is a warning.
func checkChrome(result *doctorResult) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = launcher.LookPath()
		if !found {
			result.Warnings = append(result.Warnings,
				"Chrome/Chromium not found: snapshots need Chrome or ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	out, err := exec.Command(chromePath, "--version").Output() // #nosec G204 -- path from launcher lookup or ROD_BROWSER_BIN
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer detects a container environment and names the signal found.
func isContainer() (bool, string) {
	if os.Getenv("FOLIO_CONTAINER") == "1" {
		return true, "FOLIO_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory used for snapshots is writable.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "folio-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
		return
	}
	_ = os.Remove(testFile)
	result.System.TempWritable = true
}

// checkSite loads the config and reports the asset layout. Missing optional
// images are informational; a missing embedded document is an error.
func checkSite(result *doctorResult, f commonFlags, env *Environment) {
	quiet := f
	quiet.quiet, quiet.verbose = true, false
	s, err := loadSite(quiet, &Environment{Now: env.Now, Stdout: io.Discard, Stderr: io.Discard})
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	result.Site.Config = s.configPath
	result.Site.BaseDir = s.baseDir
	result.Site.Slots = make(map[string]bool)

	asm, err := s.assembler()
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	result.Site.Loadable = true

	for _, slot := range folio.Slots() {
		_, ok := asm.ResolveAsset(slot)
		result.Site.Slots[string(slot)] = ok
	}

	dir, err := assets.OpenSiteDir(s.baseDir)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	result.Site.Embed = dir.Exists(s.layout.Embed)
	if !result.Site.Embed {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Embedded document %s not found in %s", s.layout.Embed, s.baseDir))
	}

	images, err := folio.DiscoverGalleryImages(filepath.Join(s.baseDir, filepath.FromSlash(s.layout.Extras)))
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Extras folder unreadable: %v", err))
	}
	result.Site.Extras = len(images)

	checkTheme(result, s)
}

// checkTheme reports theme names that would fail at build time. A custom
// theme path can supply any style name, so only built-in styles are checked.
func checkTheme(result *doctorResult, s *site) {
	style := s.theme.Style
	if style == "" {
		style = assets.DefaultStyleName
	}
	result.Site.Style = style
	if s.themePath == "" && !slices.Contains(assets.StyleNames(), style) {
		result.Errors = append(result.Errors, fmt.Sprintf(
			"Unknown style %q (built-in: %s)", style, strings.Join(assets.StyleNames(), ", ")))
	}

	code := s.theme.Highlight
	if code == "" {
		code = pipeline.DefaultHighlightStyle
	}
	result.Site.Code = code
	if !slices.Contains(pipeline.HighlightStyles(), strings.ToLower(code)) {
		result.Errors = append(result.Errors, fmt.Sprintf("Unknown highlight style %q", code))
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "folio doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found (snapshots unavailable)")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Site")
	if r.Site.Config != "" {
		fmt.Fprintf(w, "  [OK] Config: %s\n", r.Site.Config)
	} else {
		fmt.Fprintln(w, "  [OK] Config: defaults (no folio.yaml)")
	}
	if r.Site.Loadable {
		fmt.Fprintf(w, "  [OK] Assets: %s\n", r.Site.BaseDir)
		if r.Site.Embed {
			fmt.Fprintln(w, "  [OK] Embedded document: found")
		} else {
			fmt.Fprintln(w, "  [ERROR] Embedded document: missing")
		}
		for _, slot := range folio.Slots() {
			if r.Site.Slots[string(slot)] {
				fmt.Fprintf(w, "  [OK] %s\n", slot)
			} else {
				fmt.Fprintf(w, "  [--] %s: absent, placeholder shown\n", slot)
			}
		}
		fmt.Fprintf(w, "  [OK] Extras: %d image(s)\n", r.Site.Extras)
		fmt.Fprintf(w, "  [OK] Theme: style %s, highlight %s\n", r.Site.Style, r.Site.Code)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

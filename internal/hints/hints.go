// Package hints appends actionable advice to CLI error messages.
// Every hint is rendered as "\n  hint: <text>".
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-folio/internal/fileutil"
)

// IsInContainer detects Docker by the /.dockerenv marker. Replaced in tests.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect suggests sandbox and binary overrides for Chrome.
func ForBrowserConnect() string {
	var hs []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hs = append(hs, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hs = append(hs, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	return join(hs)
}

// ForTimeout suggests a longer snapshot timeout.
func ForTimeout() string {
	return format("the embedded visualization may load slowly, use --timeout")
}

// ForConfigNotFound suggests --config or a file in the user config dir.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/folio.yaml or run 'folio init'"
	for _, p := range searchedPaths {
		if strings.Contains(slashed(p), ".config/go-folio") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForEmbeddedDocument explains the one required asset.
func ForEmbeddedDocument(path string) string {
	return format("the page cannot render without " + path + "; point layout.embed at an HTML file containing PROFILE_SRC")
}

// ForAssetDir suggests how to point the CLI at the asset directory.
func ForAssetDir() string {
	return format("use --assets /path/to/assets or set assets.basePath in folio.yaml")
}

// ForOutputFile suggests checking the output location.
func ForOutputFile() string {
	return format("check parent directory exists and is writable")
}

// slashed normalizes Windows separators so the config-dir match works everywhere.
func slashed(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func join(hs []string) string {
	if len(hs) == 0 {
		return ""
	}
	return format(strings.Join(hs, "; "))
}

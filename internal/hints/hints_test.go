package hints

// Notes:
// - Tests touching CI/ROD_* variables use t.Setenv and cannot run in parallel.

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestForBrowserConnect - Environment-dependent suggestions
// ---------------------------------------------------------------------------

func TestForBrowserConnect(t *testing.T) {
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "ROD_NO_SANDBOX", "ROD_BROWSER_BIN"} {
		t.Setenv(v, "")
	}

	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })

	t.Run("local machine suggests browser bin only", func(t *testing.T) {
		IsInContainer = func() bool { return false }

		got := ForBrowserConnect()
		if strings.Contains(got, "ROD_NO_SANDBOX") {
			t.Errorf("unexpected sandbox hint: %q", got)
		}
		if !strings.Contains(got, "ROD_BROWSER_BIN") {
			t.Errorf("missing browser bin hint: %q", got)
		}
	})

	t.Run("container suggests disabling sandbox", func(t *testing.T) {
		IsInContainer = func() bool { return true }

		got := ForBrowserConnect()
		if !strings.Contains(got, "ROD_NO_SANDBOX=1") {
			t.Errorf("missing sandbox hint: %q", got)
		}
	})

	t.Run("nothing to suggest", func(t *testing.T) {
		IsInContainer = func() bool { return false }
		t.Setenv("ROD_BROWSER_BIN", "/usr/bin/chromium")

		if got := ForBrowserConnect(); got != "" {
			t.Errorf("ForBrowserConnect() = %q, want empty", got)
		}
	})
}

// ---------------------------------------------------------------------------
// TestForConfigNotFound - Suggests the user config path when searched
// ---------------------------------------------------------------------------

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	got := ForConfigNotFound([]string{"folio.yaml", "/home/me/.config/go-folio/folio.yaml"})
	if !strings.HasPrefix(got, "\n  hint: ") {
		t.Errorf("hint format = %q", got)
	}
	if !strings.Contains(got, "or create /home/me/.config/go-folio/folio.yaml") {
		t.Errorf("missing user config suggestion: %q", got)
	}

	got = ForConfigNotFound(nil)
	if strings.Contains(got, "or create") {
		t.Errorf("unexpected suggestion without searched paths: %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestStaticHints - Fixed hints keep the shared prefix
// ---------------------------------------------------------------------------

func TestStaticHints(t *testing.T) {
	t.Parallel()

	for name, h := range map[string]string{
		"timeout":  ForTimeout(),
		"embed":    ForEmbeddedDocument("embed.html"),
		"assetDir": ForAssetDir(),
		"output":   ForOutputFile(),
	} {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("%s hint = %q, want hint prefix", name, h)
		}
	}
	if !strings.Contains(ForEmbeddedDocument("embed.html"), "embed.html") {
		t.Error("embedded document hint should name the file")
	}
}

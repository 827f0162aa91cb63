package assets

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestEmbeddedLoader - Built-in theme
// ---------------------------------------------------------------------------

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	for _, name := range []string{DefaultStyleName, "midnight"} {
		css, err := loader.LoadStyle(name)
		if err != nil {
			t.Fatalf("LoadStyle(%q) error = %v", name, err)
		}
		if !strings.Contains(css, "--accent") {
			t.Errorf("LoadStyle(%q) missing --accent token", name)
		}
	}

	if _, err := loader.LoadStyle("nonexistent"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle(nonexistent) error = %v, want ErrStyleNotFound", err)
	}
	if _, err := loader.LoadStyle("../default"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("LoadStyle(../default) error = %v, want ErrInvalidAssetName", err)
	}
}

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	page, err := LoadTemplate(PageTemplateName)
	if err != nil {
		t.Fatalf("LoadTemplate(page) error = %v", err)
	}

	for _, want := range []string{`sandbox="allow-scripts"`, "srcdoc=", "range .Page.Blocks}}", "range .Page.Nav}}"} {
		if !strings.Contains(page, want) {
			t.Errorf("page template missing %q", want)
		}
	}
	if strings.Contains(page, "allow-same-origin") {
		t.Error("embedded frame must not get allow-same-origin")
	}

	if _, err := LoadTemplate("missing"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate(missing) error = %v, want ErrTemplateNotFound", err)
	}
}

func TestStyleNames(t *testing.T) {
	t.Parallel()

	names := StyleNames()
	if !slices.Contains(names, DefaultStyleName) || !slices.Contains(names, "midnight") {
		t.Errorf("StyleNames() = %v, want default and midnight", names)
	}
	if !slices.IsSorted(names) {
		t.Errorf("StyleNames() = %v, want sorted", names)
	}
}

// ---------------------------------------------------------------------------
// TestValidateAssetName / TestValidateRelPath - Name and path checks
// ---------------------------------------------------------------------------

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	valid := []string{"default", "midnight", "my-theme", "page_2"}
	for _, name := range valid {
		if err := ValidateAssetName(name); err != nil {
			t.Errorf("ValidateAssetName(%q) error = %v", name, err)
		}
	}

	invalid := []string{"", "../x", `..\x`, "a/b", "page.html", "."}
	for _, name := range invalid {
		if err := ValidateAssetName(name); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("ValidateAssetName(%q) error = %v, want ErrInvalidAssetName", name, err)
		}
	}
}

func TestValidateRelPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rel     string
		wantErr error
	}{
		{"profile.png", nil},
		{"gallery/about.jpg", nil},
		{"extras", nil},
		{"gallery/../cover.png", nil},
		{"", ErrInvalidAssetName},
		{"a\x00b", ErrInvalidAssetName},
		{"../secret.png", ErrPathTraversal},
		{"gallery/../../secret.png", ErrPathTraversal},
		{"..", ErrPathTraversal},
		{"/etc/passwd", ErrPathTraversal},
	}

	for _, tt := range tests {
		err := ValidateRelPath(tt.rel)
		if tt.wantErr == nil {
			if err != nil {
				t.Errorf("ValidateRelPath(%q) error = %v, want nil", tt.rel, err)
			}
			continue
		}
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("ValidateRelPath(%q) error = %v, want %v", tt.rel, err, tt.wantErr)
		}
	}
}

// Package config loads folio.yaml: the portfolio's text content, its asset
// layout and its theme.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/alnah/go-folio/internal/assets"
	"github.com/alnah/go-folio/internal/dateutil"
	"github.com/alnah/go-folio/internal/fileutil"
	"github.com/alnah/go-folio/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidToken    = errors.New("invalid theme token")
	ErrInvalidURL      = errors.New("invalid link URL")
	ErrInvalidLayout   = errors.New("invalid layout path")
	ErrInvalidDate     = errors.New("invalid footer date")
)

// DefaultName is the config name looked up when none is given.
const DefaultName = "folio"

// Field length limits.
const (
	MaxTitleLength    = 120
	MaxIconLength     = 16
	MaxNameLength     = 100
	MaxHeadingLength  = 200
	MaxQuoteLength    = 4000
	MaxLabelLength    = 100
	MaxCaptionLength  = 300
	MaxLangLength     = 35
	MaxEmailLength    = 254 // RFC 5321
	MaxURLLength      = 2048
	MaxDateLength     = 60
	MaxPathLength     = 512
	MaxTokenLength    = 64
	MaxExtraCSSLength = 64 << 10
	MaxLinks          = 12
)

// Config is the content of folio.yaml.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Profile ProfileConfig `yaml:"profile"`
	Content ContentConfig `yaml:"content"`
	Links   []Link        `yaml:"links"`
	Cards   CardsConfig   `yaml:"cards"`
	Footer  FooterConfig  `yaml:"footer"`
	Layout  LayoutConfig  `yaml:"layout"`
	Theme   ThemeConfig   `yaml:"theme"`
	Assets  AssetsConfig  `yaml:"assets"`
}

// SiteConfig holds page-level metadata.
type SiteConfig struct {
	Title    string `yaml:"title"`
	Icon     string `yaml:"icon"` // emoji or short text used as favicon
	NavTitle string `yaml:"navTitle"`
	Lang     string `yaml:"lang"`
}

// ProfileConfig describes the owner shown over the banner.
type ProfileConfig struct {
	Name        string `yaml:"name"`
	Subtitle    string `yaml:"subtitle"`
	Placeholder string `yaml:"placeholder"` // shown when the profile image is missing
}

// ContentConfig holds the page's headings and Markdown quotes.
type ContentConfig struct {
	Welcome       string `yaml:"welcome"`
	Intro         string `yaml:"intro"`
	ExtrasHeading string `yaml:"extrasHeading"`
	ExtrasQuote   string `yaml:"extrasQuote"`
	EmptyGallery  string `yaml:"emptyGallery"`
}

// Link is one link bubble.
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
	Icon  string `yaml:"icon"`
}

// Card is one content card. Card anchors are fixed by position so the
// navigation targets always exist.
type Card struct {
	Title   string `yaml:"title"`
	Caption string `yaml:"caption"`
}

// CardsConfig holds the four fixed cards, in display order.
type CardsConfig struct {
	About    Card `yaml:"about"`
	Projects Card `yaml:"projects"`
	Blogs    Card `yaml:"blogs"`
	Social   Card `yaml:"social"`
}

// List returns the cards in display order.
func (c CardsConfig) List() [4]Card {
	return [4]Card{c.About, c.Projects, c.Blogs, c.Social}
}

// FooterConfig defines the contact footer.
type FooterConfig struct {
	Label string `yaml:"label"`
	Email string `yaml:"email"`
	Date  string `yaml:"date"` // literal, "auto" or "auto:FORMAT"
}

// LayoutConfig maps asset slots to paths relative to the asset directory.
type LayoutConfig struct {
	Cover        string `yaml:"cover"`
	Profile      string `yaml:"profile"`
	Divider      string `yaml:"divider"`
	CardAbout    string `yaml:"cardAbout"`
	CardProjects string `yaml:"cardProjects"`
	CardBlogs    string `yaml:"cardBlogs"`
	CardSocial   string `yaml:"cardSocial"`
	Extras       string `yaml:"extras"`
	Embed        string `yaml:"embed"`
}

// ThemeConfig selects a style and overrides its tokens.
type ThemeConfig struct {
	Style      string `yaml:"style"` // built-in or custom style name
	Accent     string `yaml:"accent"`
	Background string `yaml:"background"`
	Text       string `yaml:"text"`
	Muted      string `yaml:"muted"`
	Radius     string `yaml:"radius"`
	MaxWidth   string `yaml:"maxWidth"`
	Highlight  string `yaml:"highlight"` // chroma style for code blocks
	ExtraCSS   string `yaml:"extraCSS"`
}

// AssetsConfig locates the asset directory and optional theme overrides.
type AssetsConfig struct {
	BasePath  string `yaml:"basePath"`  // site images and embed document
	ThemePath string `yaml:"themePath"` // styles/ and templates/ overrides
}

// DefaultConfig returns neutral content and the standard asset layout.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Title:    "Portfolio",
			Icon:     "🪐",
			NavTitle: "Portfolio",
			Lang:     "en",
		},
		Profile: ProfileConfig{
			Name:        "Your Name",
			Placeholder: "Add profile.png",
		},
		Content: ContentConfig{
			Welcome:       "Welcome to my portfolio",
			Intro:         "A few words about who you are and what you work on.",
			ExtrasHeading: "Extras",
			ExtrasQuote:   "Photos and artworks.",
			EmptyGallery:  "Put images in extras/ to populate this gallery.",
		},
		Cards: CardsConfig{
			About:    Card{Title: "About Me", Caption: "Education · Research · Activities"},
			Projects: Card{Title: "Projects", Caption: "Tools · Experiments"},
			Blogs:    Card{Title: "Blogs", Caption: "Thoughts · Notes · Travel"},
			Social:   Card{Title: "Social", Caption: "Links and handles"},
		},
		Footer: FooterConfig{Label: "Contact"},
		Layout: DefaultLayout(),
		Theme:  ThemeConfig{Style: assets.DefaultStyleName},
		Assets: AssetsConfig{BasePath: "assets"},
	}
}

// DefaultLayout returns the standard asset directory layout.
func DefaultLayout() LayoutConfig {
	return LayoutConfig{
		Cover:        "cover.png",
		Profile:      "profile.png",
		Divider:      "divider.png",
		CardAbout:    "gallery/about.jpg",
		CardProjects: "gallery/projects.jpg",
		CardBlogs:    "gallery/blogs.jpg",
		CardSocial:   "gallery/social.jpg",
		Extras:       "extras",
		Embed:        "embed.html",
	}
}

// tokenPattern accepts CSS colors, lengths and simple functions, nothing
// that can end a declaration or open a block.
var tokenPattern = regexp.MustCompile(`^[#A-Za-z0-9(),.%\s-]*$`)

// langPattern matches BCP 47 style language tags.
var langPattern = regexp.MustCompile(`^[A-Za-z]{2,8}(-[A-Za-z0-9]{1,8})*$`)

// Validate checks field lengths, theme tokens, link URLs and layout paths.
// Called by LoadConfig; library users building a Config by hand call it too.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"site.title", c.Site.Title, MaxTitleLength},
		{"site.icon", c.Site.Icon, MaxIconLength},
		{"site.navTitle", c.Site.NavTitle, MaxTitleLength},
		{"site.lang", c.Site.Lang, MaxLangLength},
		{"profile.name", c.Profile.Name, MaxNameLength},
		{"profile.subtitle", c.Profile.Subtitle, MaxHeadingLength},
		{"profile.placeholder", c.Profile.Placeholder, MaxLabelLength},
		{"content.welcome", c.Content.Welcome, MaxHeadingLength},
		{"content.intro", c.Content.Intro, MaxQuoteLength},
		{"content.extrasHeading", c.Content.ExtrasHeading, MaxHeadingLength},
		{"content.extrasQuote", c.Content.ExtrasQuote, MaxQuoteLength},
		{"content.emptyGallery", c.Content.EmptyGallery, MaxCaptionLength},
		{"footer.label", c.Footer.Label, MaxLabelLength},
		{"footer.email", c.Footer.Email, MaxEmailLength},
		{"footer.date", c.Footer.Date, MaxDateLength},
		{"theme.extraCSS", c.Theme.ExtraCSS, MaxExtraCSSLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"assets.themePath", c.Assets.ThemePath, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Site.Lang != "" && !langPattern.MatchString(c.Site.Lang) {
		return fmt.Errorf("site.lang: invalid language tag %q", c.Site.Lang)
	}

	if len(c.Links) > MaxLinks {
		return fmt.Errorf("links: %d entries, max %d", len(c.Links), MaxLinks)
	}
	for i, link := range c.Links {
		if err := validateLink(i, link); err != nil {
			return err
		}
	}

	for i, card := range c.Cards.List() {
		if err := validateCard(i, card); err != nil {
			return err
		}
	}

	if err := c.Theme.validate(); err != nil {
		return err
	}
	if err := c.Layout.validate(); err != nil {
		return err
	}

	if _, err := dateutil.Resolve(c.Footer.Date, time.Now()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return nil
}

func validateLink(i int, link Link) error {
	prefix := fmt.Sprintf("links[%d]", i)
	if err := validateFieldLength(prefix+".label", link.Label, MaxLabelLength); err != nil {
		return err
	}
	if err := validateFieldLength(prefix+".icon", link.Icon, MaxIconLength); err != nil {
		return err
	}
	if err := validateFieldLength(prefix+".url", link.URL, MaxURLLength); err != nil {
		return err
	}
	if link.Label == "" {
		return fmt.Errorf("%s.label: required", prefix)
	}
	return validateURL(prefix+".url", link.URL)
}

// validateURL accepts http(s), mailto and in-page or relative references.
func validateURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: %s: required", ErrInvalidURL, field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidURL, field, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https", "mailto":
		return nil
	default:
		return fmt.Errorf("%w: %s: scheme %q not allowed", ErrInvalidURL, field, u.Scheme)
	}
}

func validateCard(i int, card Card) error {
	prefix := fmt.Sprintf("cards[%d]", i)
	if err := validateFieldLength(prefix+".title", card.Title, MaxHeadingLength); err != nil {
		return err
	}
	return validateFieldLength(prefix+".caption", card.Caption, MaxCaptionLength)
}

func (t ThemeConfig) validate() error {
	tokens := []struct {
		name  string
		value string
	}{
		{"theme.accent", t.Accent},
		{"theme.background", t.Background},
		{"theme.text", t.Text},
		{"theme.muted", t.Muted},
		{"theme.radius", t.Radius},
		{"theme.maxWidth", t.MaxWidth},
	}
	for _, tok := range tokens {
		if err := validateFieldLength(tok.name, tok.value, MaxTokenLength); err != nil {
			return err
		}
		if !tokenPattern.MatchString(tok.value) {
			return fmt.Errorf("%w: %s: %q", ErrInvalidToken, tok.name, tok.value)
		}
	}

	if t.Style != "" {
		if err := assets.ValidateAssetName(t.Style); err != nil {
			return fmt.Errorf("theme.style: %w", err)
		}
	}
	if t.Highlight != "" {
		if err := assets.ValidateAssetName(t.Highlight); err != nil {
			return fmt.Errorf("theme.highlight: %w", err)
		}
	}
	return nil
}

func (l LayoutConfig) validate() error {
	paths := []struct {
		name  string
		value string
	}{
		{"layout.cover", l.Cover},
		{"layout.profile", l.Profile},
		{"layout.divider", l.Divider},
		{"layout.cardAbout", l.CardAbout},
		{"layout.cardProjects", l.CardProjects},
		{"layout.cardBlogs", l.CardBlogs},
		{"layout.cardSocial", l.CardSocial},
		{"layout.extras", l.Extras},
		{"layout.embed", l.Embed},
	}
	for _, p := range paths {
		if err := validateFieldLength(p.name, p.value, MaxPathLength); err != nil {
			return err
		}
		if err := assets.ValidateRelPath(p.value); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidLayout, p.name, err)
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is read as a file; anything else is
// looked up by SearchPaths. Keys absent from the file keep their
// DefaultConfig values; unknown keys are rejected.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// A relative basePath is relative to the config file, not the caller.
	cfg.Assets.BasePath = relativeTo(configPath, cfg.Assets.BasePath)
	cfg.Assets.ThemePath = relativeTo(configPath, cfg.Assets.ThemePath)

	return cfg, nil
}

func relativeTo(configPath, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(configPath), p)
}

// SearchPaths lists the files LoadConfig tries for a config name, in order:
// the current directory, then the user config directory, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, "go-folio", name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// Scaffold returns DefaultConfig as YAML, used by "folio init".
func Scaffold() ([]byte, error) {
	return yamlutil.Marshal(DefaultConfig())
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"path/filepath"

	folio "github.com/alnah/go-folio"
	"github.com/alnah/go-folio/internal/config"
	"github.com/alnah/go-folio/internal/hints"
)

// site is a loaded config resolved against the command line.
type site struct {
	cfg        *config.Config
	configPath string // empty when running on defaults
	baseDir    string // absolute
	themePath  string
	content    folio.Content
	layout     folio.Layout
	theme      folio.Theme
	logger     *slog.Logger
}

// loadSite loads the config named by f (or folio.yaml if present) and
// applies flag overrides.
func loadSite(f commonFlags, env *Environment) (*site, error) {
	logger := newLogger(env.Stderr, f.verbose, f.quiet)

	cfg, cfgPath, err := loadConfig(f.config)
	if err != nil {
		return nil, err
	}
	if cfgPath == "" {
		logger.Debug("no config file found, using defaults")
	} else {
		logger.Debug("config loaded", "path", cfgPath)
	}

	base := cfg.Assets.BasePath
	if f.assets != "" {
		base = f.assets
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", folio.ErrInvalidBaseDir, err)
	}

	themePath := cfg.Assets.ThemePath
	if f.themePath != "" {
		themePath = f.themePath
	}

	return &site{
		cfg:        cfg,
		configPath: cfgPath,
		baseDir:    abs,
		themePath:  themePath,
		content:    contentFrom(cfg),
		layout:     layoutFrom(cfg.Layout),
		theme:      themeFrom(cfg.Theme),
		logger:     logger,
	}, nil
}

// loadConfig loads nameOrPath. Without a name, folio.yaml is used when one
// is found and DefaultConfig otherwise.
func loadConfig(nameOrPath string) (*config.Config, string, error) {
	explicit := nameOrPath != ""
	if !explicit {
		nameOrPath = config.DefaultName
	}

	cfg, err := config.LoadConfig(nameOrPath)
	switch {
	case err == nil:
		return cfg, nameOrPath, nil
	case errors.Is(err, config.ErrConfigNotFound) && !explicit:
		return config.DefaultConfig(), "", nil
	case errors.Is(err, config.ErrConfigNotFound):
		return nil, "", withHint(fmt.Errorf("loading config: %w", err), hints.ForConfigNotFound(config.SearchPaths(nameOrPath)))
	default:
		return nil, "", fmt.Errorf("loading config: %w", err)
	}
}

func newLogger(w io.Writer, verbose, quiet bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func contentFrom(cfg *config.Config) folio.Content {
	links := make([]folio.Link, 0, len(cfg.Links))
	for _, l := range cfg.Links {
		links = append(links, folio.Link{Label: l.Label, URL: l.URL, Icon: l.Icon})
	}

	var cards [4]folio.CardContent
	for i, c := range cfg.Cards.List() {
		cards[i] = folio.CardContent{Title: c.Title, Caption: c.Caption}
	}

	return folio.Content{
		Title:         cfg.Site.Title,
		Icon:          cfg.Site.Icon,
		NavTitle:      cfg.Site.NavTitle,
		Lang:          cfg.Site.Lang,
		Name:          cfg.Profile.Name,
		Subtitle:      cfg.Profile.Subtitle,
		Placeholder:   cfg.Profile.Placeholder,
		Welcome:       cfg.Content.Welcome,
		Intro:         cfg.Content.Intro,
		Links:         links,
		Cards:         cards,
		ExtrasHeading: cfg.Content.ExtrasHeading,
		ExtrasQuote:   cfg.Content.ExtrasQuote,
		EmptyGallery:  cfg.Content.EmptyGallery,
		FooterLabel:   cfg.Footer.Label,
		Email:         cfg.Footer.Email,
		Date:          cfg.Footer.Date,
	}
}

func layoutFrom(l config.LayoutConfig) folio.Layout {
	return folio.Layout{
		Cover:        l.Cover,
		Profile:      l.Profile,
		Divider:      l.Divider,
		CardAbout:    l.CardAbout,
		CardProjects: l.CardProjects,
		CardBlogs:    l.CardBlogs,
		CardSocial:   l.CardSocial,
		Extras:       l.Extras,
		Embed:        l.Embed,
	}
}

func themeFrom(t config.ThemeConfig) folio.Theme {
	return folio.Theme{
		Style: t.Style,
		Tokens: folio.ThemeTokens{
			Accent:     t.Accent,
			Background: t.Background,
			Text:       t.Text,
			Muted:      t.Muted,
			Radius:     t.Radius,
			MaxWidth:   t.MaxWidth,
		},
		Highlight: t.Highlight,
		ExtraCSS:  t.ExtraCSS,
	}
}

// assembler creates an Assembler for the site. Extra options are applied
// after the site's own.
func (s *site) assembler(opts ...folio.AssemblerOption) (*folio.Assembler, error) {
	base := []folio.AssemblerOption{
		folio.WithLayout(s.layout),
		folio.WithLogger(s.logger),
	}
	return folio.NewAssembler(s.baseDir, s.content, append(base, opts...)...)
}

func (s *site) renderer() (*folio.Renderer, error) {
	var opts []folio.RendererOption
	if s.themePath != "" {
		opts = append(opts, folio.WithAssetPath(s.themePath))
	}
	return folio.NewRenderer(opts...)
}

// fileDocumentBase is the file:// URL of the embedded document's folder,
// for pages opened from disk or printed by Chrome.
func (s *site) fileDocumentBase() string {
	dir := filepath.Join(s.baseDir, filepath.FromSlash(path.Dir(s.layout.Embed)))
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(dir) + "/"}
	return u.String()
}

// render builds and renders one page.
func (s *site) render(ctx context.Context, asm *folio.Assembler, r *folio.Renderer) (string, error) {
	page, err := asm.BuildPage(ctx)
	if err != nil {
		if errors.Is(err, folio.ErrEmbeddedDocument) {
			return "", withHint(err, hints.ForEmbeddedDocument(filepath.Join(s.baseDir, filepath.FromSlash(s.layout.Embed))))
		}
		return "", err
	}
	return r.Render(ctx, page, s.theme)
}

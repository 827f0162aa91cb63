package folio

import (
	"context"
	"errors"
	"fmt"
	"html"
	"html/template"
	"log/slog"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-folio/internal/assets"
	"github.com/alnah/go-folio/internal/dateutil"
	"github.com/alnah/go-folio/internal/pipeline"
)

// DefaultFrameHeight is the banner frame height in pixels.
const DefaultFrameHeight = 420

// Asset is a resolved image slot.
type Asset struct {
	Slot     Slot
	Path     string // relative to the asset directory
	Data     []byte
	MIMEType string
}

// Inline returns the asset as a data URI.
func (a *Asset) Inline() InlineImage {
	return EncodeInlineImage(a.Data, a.MIMEType)
}

// Assembler builds pages from an asset directory and content. It holds no
// mutable state, so BuildPage is safe for concurrent use.
type Assembler struct {
	dir          *assets.SiteDir
	layout       Layout
	content      Content
	markdown     pipeline.FragmentConverter
	logger       *slog.Logger
	linkPrefix   string
	linked       bool
	documentBase string
	frameHeight  int
	now          func() time.Time
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithLayout replaces DefaultLayout.
func WithLayout(l Layout) AssemblerOption {
	return func(a *Assembler) { a.layout = l }
}

// WithLogger sets the logger for degraded sections. Default discards.
func WithLogger(l *slog.Logger) AssemblerOption {
	return func(a *Assembler) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithLinkedImages references card and gallery images as prefix + relative
// path instead of inlining them. The embedded document still receives the
// profile as a data URI.
func WithLinkedImages(prefix string) AssemblerOption {
	return func(a *Assembler) {
		a.linked = true
		a.linkPrefix = strings.TrimSuffix(prefix, "/") + "/"
	}
}

// WithDocumentBase anchors relative URLs in the embedded document to base,
// a URL prefix ("/assets/") or a file:// URL of the asset directory.
func WithDocumentBase(base string) AssemblerOption {
	return func(a *Assembler) { a.documentBase = base }
}

// WithFrameHeight sets the banner frame height in pixels.
// Panics if px <= 0 (programmer error, similar to time.NewTicker).
func WithFrameHeight(px int) AssemblerOption {
	if px <= 0 {
		panic("folio: WithFrameHeight height must be positive")
	}
	return func(a *Assembler) { a.frameHeight = px }
}

// WithClock sets the time source for BuiltAt and "auto" footer dates.
func WithClock(now func() time.Time) AssemblerOption {
	return func(a *Assembler) {
		if now != nil {
			a.now = now
		}
	}
}

// WithMarkdown replaces the goldmark converter used for quotes.
func WithMarkdown(c pipeline.FragmentConverter) AssemblerOption {
	return func(a *Assembler) {
		if c != nil {
			a.markdown = c
		}
	}
}

// NewAssembler creates an Assembler for the asset directory baseDir.
// Returns ErrInvalidBaseDir if baseDir is not a readable directory or a
// layout path is invalid.
func NewAssembler(baseDir string, content Content, opts ...AssemblerOption) (*Assembler, error) {
	dir, err := assets.OpenSiteDir(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseDir, err)
	}

	a := &Assembler{
		dir:         dir,
		layout:      DefaultLayout(),
		content:     content,
		markdown:    pipeline.NewGoldmarkConverter(),
		logger:      slog.New(slog.DiscardHandler),
		frameHeight: DefaultFrameHeight,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	for _, slot := range Slots() {
		if err := assets.ValidateRelPath(a.layout.Path(slot)); err != nil {
			return nil, fmt.Errorf("%w: layout %s: %v", ErrInvalidBaseDir, slot, err)
		}
	}
	for _, rel := range []string{a.layout.Extras, a.layout.Embed} {
		if err := assets.ValidateRelPath(rel); err != nil {
			return nil, fmt.Errorf("%w: layout: %v", ErrInvalidBaseDir, err)
		}
	}

	return a, nil
}

// BaseDir returns the absolute asset directory.
func (a *Assembler) BaseDir() string {
	return a.dir.Path()
}

// Layout returns the asset layout.
func (a *Assembler) Layout() Layout {
	return a.layout
}

// ResolveAsset reads the file mapped to slot. A missing, empty or
// unreadable file returns (nil, false) and logs a warning; it is never an
// error. Unknown slots panic.
func (a *Assembler) ResolveAsset(slot Slot) (*Asset, bool) {
	rel := a.layout.Path(slot)

	data, err := a.dir.ReadFile(rel)
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, assets.ErrAssetNotFound) {
			level = slog.LevelInfo
		}
		a.logger.Log(context.Background(), level, "asset unavailable", "slot", slot, "path", rel, "error", err)
		return nil, false
	}
	if len(data) == 0 {
		a.logger.Warn("asset is empty", "slot", slot, "path", rel)
		return nil, false
	}

	return &Asset{Slot: slot, Path: rel, Data: data, MIMEType: detectMIME(data)}, true
}

// BuildPage assembles the page. Missing images degrade their section; only
// an unreadable embedded document or a cancelled context fails the build.
func (a *Assembler) BuildPage(ctx context.Context) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	document, err := a.loadDocument()
	if err != nil {
		return nil, err
	}

	profile, hasProfile := a.ResolveAsset(SlotProfile)
	var profileRef InlineImage
	if hasProfile {
		profileRef = profile.Inline()
	}
	document = InjectProfile(document, profileRef)

	if a.documentBase != "" {
		rewritten, err := pipeline.RewriteRelativeURLs(document, a.documentBase)
		if err != nil {
			a.logger.Warn("embedded document URLs not rewritten", "error", err)
		} else {
			document = rewritten
		}
	}

	intro, err := a.quote(ctx, a.content.Intro)
	if err != nil {
		return nil, err
	}
	extrasQuote, err := a.quote(ctx, a.content.ExtrasQuote)
	if err != nil {
		return nil, err
	}

	divider := a.slotImage(SlotDivider, "")

	banner := &BannerBlock{
		Cover:              a.slotImage(SlotCover, a.content.Name),
		Document:           document,
		FrameHeight:        a.frameHeight,
		ProfilePlaceholder: a.content.Placeholder,
		Name:               a.content.Name,
		Subtitle:           a.content.Subtitle,
	}
	if hasProfile {
		banner.Profile = a.assetImage(profile, a.content.Name)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	gallery := a.gallery(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := a.now()
	blocks := []Block{
		{Kind: KindBanner, Banner: banner},
		{Kind: KindDivider, Divider: &DividerBlock{Image: divider}},
		{Kind: KindText, Anchor: AnchorAbout, Text: &TextBlock{Style: TextHeading, Text: a.content.Welcome}},
		{Kind: KindText, Text: &TextBlock{Style: TextQuote, Text: a.content.Intro, HTML: intro}},
		{Kind: KindLinkList, Links: &LinkListBlock{Links: a.content.Links}},
		{Kind: KindCardGrid, Anchor: AnchorProjects, Cards: a.cards()},
		{Kind: KindDivider, Divider: &DividerBlock{Image: divider}},
		{Kind: KindText, Anchor: AnchorExtras, Text: &TextBlock{Style: TextHeading, Text: a.content.ExtrasHeading}},
		{Kind: KindText, Text: &TextBlock{Style: TextQuote, Text: a.content.ExtrasQuote, HTML: extrasQuote}},
		{Kind: KindImageGrid, Images: gallery},
		{Kind: KindFooter, Anchor: AnchorContact, Footer: a.footer(now, divider)},
	}

	return &Page{
		ID:       uuid.NewString(),
		Title:    a.content.Title,
		Icon:     a.content.Icon,
		NavTitle: a.content.NavTitle,
		Lang:     a.content.Lang,
		Nav:      defaultNav(),
		Blocks:   blocks,
		BuiltAt:  now,
	}, nil
}

// loadDocument reads the embedded document. It is the one required file.
func (a *Assembler) loadDocument() (string, error) {
	data, err := a.dir.ReadFile(a.layout.Embed)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrEmbeddedDocument, a.layout.Embed, err)
	}
	return string(data), nil
}

// quote converts Markdown to HTML. A conversion failure degrades to the
// escaped source text; cancellation fails the build.
func (a *Assembler) quote(ctx context.Context, md string) (template.HTML, error) {
	out, err := a.markdown.ToFragment(ctx, md)
	if err == nil {
		return template.HTML(out), nil // #nosec G203 -- goldmark runs without WithUnsafe
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	a.logger.Warn("quote rendered as plain text", "error", err)
	return template.HTML(html.EscapeString(md)), nil // #nosec G203 -- escaped
}

// slotImage resolves slot into an Image, nil when the asset is absent.
func (a *Assembler) slotImage(slot Slot, alt string) *Image {
	asset, ok := a.ResolveAsset(slot)
	if !ok {
		return nil
	}
	return a.assetImage(asset, alt)
}

func (a *Assembler) assetImage(asset *Asset, alt string) *Image {
	if a.linked {
		return &Image{Src: a.linkURL(asset.Path), Alt: alt}
	}
	return &Image{Src: string(asset.Inline()), Alt: alt}
}

// linkURL escapes each segment of rel under the link prefix.
func (a *Assembler) linkURL(rel string) string {
	segments := strings.Split(path.Clean(rel), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return a.linkPrefix + strings.Join(segments, "/")
}

// cards places card i in column i%2.
func (a *Assembler) cards() *CardGridBlock {
	grid := &CardGridBlock{Columns: make([][]Card, 2)}
	for i, slot := range cardSlots {
		text := a.content.Cards[i]
		card := Card{
			Slot:    slot,
			Anchor:  cardAnchors[i],
			Title:   text.Title,
			Caption: text.Caption,
			Image:   a.slotImage(slot, text.Title),
		}
		grid.Columns[i%2] = append(grid.Columns[i%2], card)
	}
	return grid
}

// gallery lists the extras folder into rows. Listing failures are logged
// and shown as the empty notice.
func (a *Assembler) gallery(ctx context.Context) *ImageGridBlock {
	block := &ImageGridBlock{Columns: GalleryColumns}

	entries, err := a.dir.ReadDir(a.layout.Extras)
	if err != nil && !errors.Is(err, assets.ErrAssetNotFound) {
		a.logger.Warn("extras folder unreadable", "path", a.layout.Extras, "error", err)
	}
	folder := filepath.Join(a.dir.Path(), filepath.FromSlash(a.layout.Extras))
	found := collectGallery(folder, entries, func(name string) bool {
		return a.dir.Exists(path.Join(a.layout.Extras, name))
	})

	images := make([]Image, 0, len(found))
	for _, g := range found {
		if ctx.Err() != nil {
			break
		}
		rel := path.Join(a.layout.Extras, g.Name)
		if a.linked {
			images = append(images, Image{Src: a.linkURL(rel), Alt: g.Alt})
			continue
		}
		data, err := a.dir.ReadFile(rel)
		if err != nil || len(data) == 0 {
			a.logger.Warn("gallery image skipped", "path", rel, "error", err)
			continue
		}
		images = append(images, Image{Src: string(EncodeInlineImage(data, "")), Alt: g.Alt})
	}

	if len(images) == 0 {
		block.Notice = a.content.EmptyGallery
		return block
	}
	for i := 0; i < len(images); i += GalleryColumns {
		end := min(i+GalleryColumns, len(images))
		block.Rows = append(block.Rows, images[i:end])
	}
	return block
}

func (a *Assembler) footer(now time.Time, divider *Image) *FooterBlock {
	date, err := dateutil.Resolve(a.content.Date, now)
	if err != nil {
		a.logger.Warn("footer date dropped", "value", a.content.Date, "error", err)
		date = ""
	}
	return &FooterBlock{
		Label:   a.content.FooterLabel,
		Email:   a.content.Email,
		Date:    date,
		Divider: divider,
	}
}

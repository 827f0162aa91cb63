package folio

import (
	"html/template"
	"time"
)

// BlockKind identifies the payload of a Block.
type BlockKind string

// Block kinds.
const (
	KindBanner    BlockKind = "banner"
	KindDivider   BlockKind = "divider"
	KindText      BlockKind = "text"
	KindLinkList  BlockKind = "link-list"
	KindCardGrid  BlockKind = "card-grid"
	KindImageGrid BlockKind = "image-grid"
	KindFooter    BlockKind = "footer"
)

// Navigation anchors.
const (
	AnchorAbout    = "about"
	AnchorProjects = "projects"
	AnchorBlogs    = "blogs"
	AnchorSocial   = "social"
	AnchorExtras   = "extras"
	AnchorContact  = "contact"
)

// GalleryColumns is the width of the image grid.
const GalleryColumns = 3

// cardAnchors gives each card position its fixed id.
var cardAnchors = [4]string{"", "", AnchorBlogs, AnchorSocial}

// Block is one section of the page. Exactly one payload matching Kind is
// set. Blocks are built once per page and not modified afterwards.
type Block struct {
	Kind   BlockKind
	Anchor string

	Banner  *BannerBlock
	Divider *DividerBlock
	Text    *TextBlock
	Links   *LinkListBlock
	Cards   *CardGridBlock
	Images  *ImageGridBlock
	Footer  *FooterBlock
}

// Image is a renderable image reference: a data URI or a URL.
type Image struct {
	Src string
	Alt string
}

// BannerBlock is the cover with the embedded document and profile overlay.
type BannerBlock struct {
	Cover              *Image
	Document           string // embedded document, profile already injected
	FrameHeight        int
	Profile            *Image
	ProfilePlaceholder string
	Name               string
	Subtitle           string
}

// DividerBlock is a divider strip. A nil Image renders as a plain rule.
type DividerBlock struct {
	Image *Image
}

// TextStyle distinguishes headings from quotes.
type TextStyle string

// Text styles.
const (
	TextHeading TextStyle = "heading"
	TextQuote   TextStyle = "quote"
)

// TextBlock is a heading (plain Text) or a quote (Markdown rendered to HTML).
type TextBlock struct {
	Style TextStyle
	Text  string
	HTML  template.HTML
}

// IsHeading reports whether the block is a heading.
func (t *TextBlock) IsHeading() bool { return t.Style == TextHeading }

// LinkListBlock is the row of link bubbles.
type LinkListBlock struct {
	Links []Link
}

// Card is one rendered card. Image is nil when the thumbnail is missing.
type Card struct {
	Slot    Slot
	Anchor  string
	Title   string
	Caption string
	Image   *Image
}

// CardGridBlock holds the cards split in two columns: card i goes to
// column i%2.
type CardGridBlock struct {
	Columns [][]Card
}

// ImageGridBlock is the extras gallery, row-major. Notice is set when there
// are no images.
type ImageGridBlock struct {
	Columns int
	Rows    [][]Image
	Notice  string
}

// FooterBlock is the contact footer with the closing divider.
type FooterBlock struct {
	Label   string
	Email   string
	Date    string
	Divider *Image
}

// NavItem is one navigation link.
type NavItem struct {
	Label  string
	Anchor string
}

// Page is the result of one build.
type Page struct {
	ID       string
	Title    string
	Icon     string
	NavTitle string
	Lang     string
	Nav      []NavItem
	Blocks   []Block
	BuiltAt  time.Time
}

// defaultNav lists the navigation entries in display order.
func defaultNav() []NavItem {
	return []NavItem{
		{Label: "About", Anchor: AnchorAbout},
		{Label: "Projects", Anchor: AnchorProjects},
		{Label: "Blogs", Anchor: AnchorBlogs},
		{Label: "Extras", Anchor: AnchorExtras},
		{Label: "Contact", Anchor: AnchorContact},
	}
}

// Anchors returns the ids present on the page, in document order.
func (p *Page) Anchors() []string {
	var ids []string
	for _, b := range p.Blocks {
		if b.Anchor != "" {
			ids = append(ids, b.Anchor)
		}
		if b.Cards == nil {
			continue
		}
		for _, col := range b.Cards.Columns {
			for _, c := range col {
				if c.Anchor != "" {
					ids = append(ids, c.Anchor)
				}
			}
		}
	}
	return ids
}

// Kinds returns the block kinds in order.
func (p *Page) Kinds() []BlockKind {
	kinds := make([]BlockKind, len(p.Blocks))
	for i, b := range p.Blocks {
		kinds[i] = b.Kind
	}
	return kinds
}

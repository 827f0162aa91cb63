package folio

// Content is the text of the page. Intro and ExtrasQuote are Markdown;
// everything else is plain text and escaped on render.
type Content struct {
	Title         string
	Icon          string
	NavTitle      string
	Lang          string
	Name          string
	Subtitle      string
	Placeholder   string // replaces a missing profile image
	Welcome       string
	Intro         string
	Links         []Link
	Cards         [4]CardContent // about, projects, blogs, social
	ExtrasHeading string
	ExtrasQuote   string
	EmptyGallery  string // notice for an empty extras folder
	FooterLabel   string
	Email         string
	Date          string // literal, "auto" or "auto:FORMAT"
}

// Link is one link bubble.
type Link struct {
	Label string
	URL   string
	Icon  string
}

// CardContent is the text of one card.
type CardContent struct {
	Title   string
	Caption string
}

// DefaultContent returns neutral placeholder content.
func DefaultContent() Content {
	return Content{
		Title:       "Portfolio",
		Icon:        "🪐",
		NavTitle:    "Portfolio",
		Lang:        "en",
		Name:        "Your Name",
		Placeholder: "Add profile.png",
		Welcome:     "Welcome to my portfolio",
		Intro:       "A few words about who you are and what you work on.",
		Cards: [4]CardContent{
			{Title: "About Me", Caption: "Education · Research · Activities"},
			{Title: "Projects", Caption: "Tools · Experiments"},
			{Title: "Blogs", Caption: "Thoughts · Notes · Travel"},
			{Title: "Social", Caption: "Links and handles"},
		},
		ExtrasHeading: "Extras",
		ExtrasQuote:   "Photos and artworks.",
		EmptyGallery:  "Put images in extras/ to populate this gallery.",
		FooterLabel:   "Contact",
	}
}

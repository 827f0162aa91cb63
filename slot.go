package folio

import "fmt"

// Slot is the logical name of an image asset.
type Slot string

// Image slots.
const (
	SlotCover        Slot = "cover"
	SlotProfile      Slot = "profile"
	SlotDivider      Slot = "divider"
	SlotCardAbout    Slot = "card-about"
	SlotCardProjects Slot = "card-projects"
	SlotCardBlogs    Slot = "card-blogs"
	SlotCardSocial   Slot = "card-social"
)

// cardSlots lists the card thumbnails in display order.
var cardSlots = [4]Slot{SlotCardAbout, SlotCardProjects, SlotCardBlogs, SlotCardSocial}

// Slots returns every image slot in a stable order.
func Slots() []Slot {
	return []Slot{SlotCover, SlotProfile, SlotDivider, SlotCardAbout, SlotCardProjects, SlotCardBlogs, SlotCardSocial}
}

// Layout maps slots, the extras folder and the embedded document to paths
// relative to the asset directory. The zero value is not usable; start from
// DefaultLayout.
type Layout struct {
	Cover        string
	Profile      string
	Divider      string
	CardAbout    string
	CardProjects string
	CardBlogs    string
	CardSocial   string
	Extras       string
	Embed        string
}

// DefaultLayout returns the standard asset directory layout.
func DefaultLayout() Layout {
	return Layout{
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

// Path returns the relative path of slot. It panics on a slot outside
// Slots: slot names are fixed at compile time, so an unknown one is a bug.
func (l Layout) Path(slot Slot) string {
	switch slot {
	case SlotCover:
		return l.Cover
	case SlotProfile:
		return l.Profile
	case SlotDivider:
		return l.Divider
	case SlotCardAbout:
		return l.CardAbout
	case SlotCardProjects:
		return l.CardProjects
	case SlotCardBlogs:
		return l.CardBlogs
	case SlotCardSocial:
		return l.CardSocial
	}
	panic(fmt.Sprintf("folio: unknown asset slot %q", string(slot)))
}

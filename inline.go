package folio

import (
	"encoding/base64"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ProfileToken is replaced with the profile image in the embedded document.
const ProfileToken = "PROFILE_SRC"

// InlineImage is a data URI: "data:<mime>;base64,<payload>".
// The zero value means no image.
type InlineImage string

// IsZero reports whether r holds no image.
func (r InlineImage) IsZero() bool { return r == "" }

// EncodeInlineImage wraps data in a base64 data URI. Empty data yields the
// zero InlineImage; an empty mimeType is sniffed from the bytes.
func EncodeInlineImage(data []byte, mimeType string) InlineImage {
	if len(data) == 0 {
		return ""
	}
	if mimeType == "" {
		mimeType = detectMIME(data)
	}

	var b strings.Builder
	b.Grow(len("data:;base64,") + len(mimeType) + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString("data:")
	b.WriteString(mimeType)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return InlineImage(b.String())
}

// detectMIME sniffs the media type without parameters ("image/png", not
// "text/plain; charset=utf-8").
func detectMIME(data []byte) string {
	mediaType, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	return strings.TrimSpace(mediaType)
}

// InjectProfile replaces every literal occurrence of ProfileToken in
// document with ref, or with "" when ref is zero. A document without the
// token is returned unchanged.
func InjectProfile(document string, ref InlineImage) string {
	if !strings.Contains(document, ProfileToken) {
		return document
	}
	return strings.ReplaceAll(document, ProfileToken, string(ref))
}

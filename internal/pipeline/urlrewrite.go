package pipeline

import (
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// urlAttrs lists the attributes rewritten per element.
var urlAttrs = map[atom.Atom]string{
	atom.Img:    "src",
	atom.Script: "src",
	atom.Source: "src",
	atom.Link:   "href",
	atom.A:      "href",
}

// RewriteRelativeURLs resolves relative resource references in an HTML
// document against base. A frame loaded through srcdoc resolves relative
// URLs against its parent page, so the embedded document needs its
// references anchored to where its files are actually served.
//
// base is either a URL path prefix ("/assets/") or an absolute file:// URL.
// Empty base returns the document unchanged. References that would climb
// above base are left untouched.
func RewriteRelativeURLs(document, base string) (string, error) {
	if base == "" || strings.TrimSpace(document) == "" {
		return document, nil
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}

	doc, fragment, err := parseHTML(document)
	if err != nil {
		return "", err
	}

	rewriteNode(doc, baseURL)
	return renderHTML(doc, fragment)
}

// parseHTML parses full documents as such and anything else as a body
// fragment, so fragments are not wrapped in <html><body>.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

func renderHTML(doc *html.Node, fragment bool) (string, error) {
	var buf strings.Builder

	if !fragment {
		if err := html.Render(&buf, doc); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func rewriteNode(n *html.Node, base *url.URL) {
	if n.Type == html.ElementNode {
		if key, ok := urlAttrs[n.DataAtom]; ok {
			rewriteAttr(n, key, base)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, base)
	}
}

func rewriteAttr(n *html.Node, key string, base *url.URL) {
	for i, attr := range n.Attr {
		if attr.Key != key || !isRelativeRef(attr.Val) {
			continue
		}

		ref, err := url.Parse(attr.Val)
		if err != nil {
			continue
		}

		joined := path.Join(base.Path, ref.Path)
		if !strings.HasPrefix(joined+"/", base.Path) {
			continue
		}

		resolved := *base
		resolved.Path = joined
		resolved.RawQuery = ref.RawQuery
		resolved.Fragment = ref.Fragment
		n.Attr[i].Val = resolved.String()
	}
}

// isRelativeRef reports whether ref is a relative path reference: no
// scheme, no host, not rooted and not a bare fragment.
func isRelativeRef(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "/") {
		return false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}

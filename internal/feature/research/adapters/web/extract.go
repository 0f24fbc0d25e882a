package web

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// strippedTags are removed before text extraction.
var strippedTags = map[atom.Atom]bool{
	atom.Script: true,
	atom.Style:  true,
	atom.Nav:    true,
	atom.Footer: true,
	atom.Header: true,
	atom.Aside:  true,
}

// contentSelectors are tried in order; the first match wins, then <body>.
var contentSelectors = []string{
	"main", "article", ".content", "#content",
	".main-content", ".post-content", ".entry-content",
	".article-content", ".page-content", ".post-body",
	".entry", ".post", ".article",
}

// ExtractPage は HTML からページタイトルと本文テキストを取り出します。
// タイトルが無い場合はホスト名を使い、本文は maxChars で切り詰めて "..." を付けます。
func ExtractPage(doc *html.Node, pageURL string, maxChars int) (title, content string) {
	if t := findFirst(doc, func(n *html.Node) bool { return n.DataAtom == atom.Title }); t != nil {
		title = collapse(textOf(t))
	}
	if title == "" {
		if u, err := url.Parse(pageURL); err == nil {
			title = u.Host
		}
	}

	removeTags(doc)

	root := doc
	for _, sel := range contentSelectors {
		if n := findFirst(doc, matcher(sel)); n != nil {
			root = n
			break
		}
	}
	if root == doc {
		if body := findFirst(doc, func(n *html.Node) bool { return n.DataAtom == atom.Body }); body != nil {
			root = body
		}
	}

	content = collapse(textOf(root))
	if maxChars > 0 {
		if r := []rune(content); len(r) > maxChars {
			content = string(r[:maxChars]) + "..."
		}
	}
	return title, content
}

// matcher supports the tag, .class and #id forms used by contentSelectors.
func matcher(sel string) func(*html.Node) bool {
	switch {
	case strings.HasPrefix(sel, "."):
		class := sel[1:]
		return func(n *html.Node) bool {
			return n.Type == html.ElementNode && hasClass(attr(n, "class"), class)
		}
	case strings.HasPrefix(sel, "#"):
		id := sel[1:]
		return func(n *html.Node) bool {
			return n.Type == html.ElementNode && attr(n, "id") == id
		}
	default:
		return func(n *html.Node) bool {
			return n.Type == html.ElementNode && n.Data == sel
		}
	}
}

func hasClass(classes, class string) bool {
	for _, c := range strings.Fields(classes) {
		if c == class {
			return true
		}
	}
	return false
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func removeTags(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode && strippedTags[c.DataAtom] {
			n.RemoveChild(c)
		} else {
			removeTags(c)
		}
		c = next
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// textOf joins all text nodes under n with single spaces.
func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				sb.WriteString(s)
				sb.WriteByte(' ')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

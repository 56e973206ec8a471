// Package jd fetches job postings and extracts their title and description.
package jd

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Posting is the extracted job description.
type Posting struct {
	Title       string
	Description string
}

// MaxDescription bounds the extracted description length in runes.
const MaxDescription = 8000

// Extract parses an HTML page. The title prefers og:title over <title>; the
// description prefers og:description, then meta description, then the text
// of <main>, <article> or <body>.
func Extract(r io.Reader) (Posting, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Posting{}, err
	}

	var (
		title, ogTitle      string
		metaDesc, ogDesc    string
		main, article, body *html.Node
	)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Title:
				if title == "" {
					title = collapse(textOf(n))
				}
			case atom.Meta:
				name := strings.ToLower(attr(n, "name"))
				prop := strings.ToLower(attr(n, "property"))
				content := collapse(attr(n, "content"))
				switch {
				case prop == "og:title" && ogTitle == "":
					ogTitle = content
				case prop == "og:description" && ogDesc == "":
					ogDesc = content
				case name == "description" && metaDesc == "":
					metaDesc = content
				}
			case atom.Main:
				if main == nil {
					main = n
				}
			case atom.Article:
				if article == nil {
					article = n
				}
			case atom.Body:
				body = n
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	p := Posting{Title: firstNonEmpty(ogTitle, title)}
	p.Description = firstNonEmpty(ogDesc, metaDesc)
	if p.Description == "" {
		for _, n := range []*html.Node{main, article, body} {
			if n == nil {
				continue
			}
			if t := collapse(textOf(n)); t != "" {
				p.Description = t
				break
			}
		}
	}
	p.Description = truncate(p.Description, MaxDescription)
	return p, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// textOf returns the visible text under n, skipping script-like elements.
func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Template, atom.Nav, atom.Footer, atom.Header:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return strings.TrimSpace(string(r[:max]))
}

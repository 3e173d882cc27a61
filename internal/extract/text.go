package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	// rangePattern matches "2020-04-13 — 2020-07-02" and "2021-05-01 - Present"
	rangePattern = regexp.MustCompile(`(?i)\d{4}-\d{2}-\d{2}\s*[—–-]\s*(?:\d{4}-\d{2}-\d{2}|present)`)

	yearPattern = regexp.MustCompile(`\d{4}`)
)

// text returns the selection's text with a space between text nodes and
// runs of whitespace collapsed
func text(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		collectText(n, &b)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// splitRanges cuts s at every date range. Each range owns the text up to the
// next range, which is taken as the team label.
func splitRanges(s string) [][2]string {
	locs := rangePattern.FindAllStringIndex(s, -1)
	out := make([][2]string, 0, len(locs))
	for i, loc := range locs {
		end := len(s)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		team := strings.TrimSpace(s[loc[1]:end])
		if team == "" {
			continue
		}
		out = append(out, [2]string{strings.TrimSpace(s[loc[0]:loc[1]]), team})
	}
	return out
}

// documentOrder indexes every node under root in pre-order
func documentOrder(root *html.Node) map[*html.Node]int {
	order := make(map[*html.Node]int)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		order[n] = len(order)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return order
}

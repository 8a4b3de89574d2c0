package sitrans

import (
	"strings"

	"golang.org/x/net/html"
)

// challengeMarker is the heading text Cloudflare serves on its
// interstitial challenge page. A mirror crawling too fast caches these
// instead of real content.
const challengeMarker = "Checking if the site connection is secure"

// Validate classifies a cached page as usable or corrupt before any
// other processing. Checks run in order and short-circuit on the first
// match: empty file, unparseable markup, syndication feed, anti-bot
// challenge page. Validate never deletes anything; disposition of a
// corrupt page belongs to the orchestrator.
func Validate(raw []byte) Verdict {
	if len(raw) == 0 {
		return Verdict{Reason: ReasonEmpty}
	}

	root, err := html.Parse(strings.NewReader(string(raw)))
	if err != nil {
		return Verdict{Reason: ReasonUnparseable}
	}

	if findElement(root, "rss") != nil || findElement(root, "feed") != nil {
		return Verdict{Reason: ReasonFeed}
	}

	if h2 := findElement(root, "h2"); h2 != nil {
		if strings.Contains(elementText(h2), challengeMarker) {
			return Verdict{Reason: ReasonChallenge}
		}
	}

	return Verdict{OK: true}
}

// findElement returns the first element with the given tag in document
// order, or nil.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// elementText concatenates all text beneath a node.
func elementText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

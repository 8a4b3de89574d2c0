package processor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZaguanLabs/sitrans"
	"golang.org/x/net/html"
)

// Doctype is the canonical declaration every finalized page carries.
const Doctype = "<!DOCTYPE html>"

// DoctypeArtifacts are tokens that document-level backends have been
// observed substituting for the DOCTYPE declaration keyword when fed a
// whole page. Each is repaired back to the canonical declaration.
var DoctypeArtifacts = []string{
	"<!डॉक्टाइप html>",
	"<!doctype एचटीएमएल>",
	"<!DOCTYPE एचटीएमएल>",
}

// RepairDoctype replaces known mistranslated doctype tokens with the
// canonical declaration. Byte-identical no-op when none are present, so
// it is safe to run any number of times. An empty artifact list falls
// back to the defaults.
func RepairDoctype(markup string, artifacts ...string) string {
	if len(artifacts) == 0 {
		artifacts = DoctypeArtifacts
	}
	for _, artifact := range artifacts {
		markup = strings.ReplaceAll(markup, artifact, Doctype)
	}
	return markup
}

// StampLanguage sets lang and dir attributes on the <html> element for
// the target language.
func StampLanguage(markup string, pair sitrans.LanguagePair) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", &sitrans.ProcessorError{Message: "failed to parse HTML", Cause: err}
	}

	htmlTag := doc.Find("html")
	if htmlTag.Length() > 0 {
		htmlTag.SetAttr("lang", sitrans.ToHTMLLang(pair.Target))
		htmlTag.SetAttr("dir", sitrans.GetDirection(pair.Target))
	}

	out, err := doc.Html()
	if err != nil {
		return "", &sitrans.ProcessorError{Message: "failed to serialize HTML", Cause: err}
	}
	return out, nil
}

// Finalize performs the idempotent post-processing repairs and renders
// the committed form of a page: doctype repair, lang/dir stamping, and
// canonical indentation.
func Finalize(markup string, pair sitrans.LanguagePair) (string, error) {
	repaired := RepairDoctype(markup)

	stamped, err := StampLanguage(repaired, pair)
	if err != nil {
		return "", err
	}

	return Format(stamped)
}

// voidTags have no end tag.
var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// verbatimTags keep their subtree byte-for-byte: whitespace inside them
// is significant, or their content is not markup at all.
var verbatimTags = map[string]bool{
	"pre": true, "textarea": true, "script": true, "style": true,
}

// Format reformats a document into a canonical, human-readable
// indentation form. Idempotent: formatting already-formatted output
// yields identical bytes, because the whitespace-only text nodes a
// previous pass introduced are dropped before re-indenting.
func Format(markup string) (string, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return "", &sitrans.ProcessorError{Message: "failed to parse HTML", Cause: err}
	}

	var sb strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		formatNode(&sb, c, 0)
	}
	return sb.String(), nil
}

func formatNode(sb *strings.Builder, n *html.Node, depth int) {
	indent := strings.Repeat("  ", depth)

	switch n.Type {
	case html.DoctypeNode:
		sb.WriteString("<!DOCTYPE " + n.Data + ">\n")

	case html.TextNode:
		text := strings.TrimSpace(n.Data)
		if text != "" {
			sb.WriteString(indent + html.EscapeString(text) + "\n")
		}

	case html.CommentNode:
		// Comments were stripped by the sanitizer; drop stragglers.

	case html.ElementNode:
		tag := strings.ToLower(n.Data)

		if verbatimTags[tag] {
			sb.WriteString(indent)
			_ = html.Render(sb, n)
			sb.WriteString("\n")
			return
		}

		if voidTags[tag] || !hasElementChild(n) {
			// Leaf elements render compactly on one line.
			sb.WriteString(indent)
			_ = html.Render(sb, n)
			sb.WriteString("\n")
			return
		}

		sb.WriteString(indent + openTag(n) + "\n")
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			formatNode(sb, c, depth+1)
		}
		sb.WriteString(indent + "</" + tag + ">\n")
	}
}

func hasElementChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return true
		}
	}
	return false
}

func openTag(n *html.Node) string {
	var sb strings.Builder
	sb.WriteString("<" + strings.ToLower(n.Data))
	for _, attr := range n.Attr {
		sb.WriteString(" " + attr.Key + `="` + html.EscapeString(attr.Val) + `"`)
	}
	sb.WriteString(">")
	return sb.String()
}

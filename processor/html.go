package processor

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZaguanLabs/sitrans"
	"golang.org/x/net/html"
)

// HTMLProcessor walks a parsed page, decides per element whether its
// text (or one attribute) is eligible for translation, and writes
// translations back onto the exact nodes they came from.
type HTMLProcessor struct {
	pair         sitrans.LanguagePair
	skippedTags  map[string]bool
	targetScript []*unicode.RangeTable
	detector     sitrans.Detector
}

// HTMLOption is a functional option for configuring the processor.
type HTMLOption func(*HTMLProcessor)

// WithDetector switches the already-translated guard from target-script
// exclusion to language detection: a node is eligible only when the
// detector confidently reports the source language. Detection failures
// exclude the node; they are never retried.
func WithDetector(d sitrans.Detector) HTMLOption {
	return func(p *HTMLProcessor) {
		p.detector = d
	}
}

// WithSkippedTags replaces the set of tags whose subtrees are excluded
// from traversal.
func WithSkippedTags(tags []string) HTMLOption {
	return func(p *HTMLProcessor) {
		skipped := make(map[string]bool)
		for _, tag := range tags {
			skipped[strings.ToLower(tag)] = true
		}
		p.skippedTags = skipped
	}
}

// NewHTMLProcessor creates a processor for the given language pair.
func NewHTMLProcessor(pair sitrans.LanguagePair, opts ...HTMLOption) *HTMLProcessor {
	p := &HTMLProcessor{
		pair:         pair,
		skippedTags:  sitrans.SkippedTags,
		targetScript: sitrans.ScriptRanges(pair.Target),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// attrRef points at one translatable attribute of an element.
type attrRef struct {
	node *html.Node
	name string
}

// Page holds a parsed document together with references from node IDs
// back into its tree. References are owned by the page for its lifetime
// and never shared across documents.
type Page struct {
	doc   *goquery.Document
	texts map[string]*html.Node
	attrs map[string]attrRef
}

// Extract parses HTML and selects the translatable nodes. Selection
// misses are silent: an ineligible element is simply nothing to do.
func (p *HTMLProcessor) Extract(content string) (*Page, []TextNode, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, nil, &sitrans.ProcessorError{Message: "failed to parse HTML", Cause: err}
	}

	page := &Page{
		doc:   doc,
		texts: make(map[string]*html.Node),
		attrs: make(map[string]attrRef),
	}
	var nodes []TextNode

	addText := func(owner, textNode *html.Node, text string) {
		id := fmt.Sprintf("node-%d", len(nodes))
		page.texts[id] = textNode
		nodes = append(nodes, TextNode{
			ID:        id,
			Text:      text,
			Hash:      sitrans.HashText(text),
			ParentTag: owner.Data,
		})
	}
	addAttr := func(owner *html.Node, name, text string) {
		id := fmt.Sprintf("node-%d", len(nodes))
		page.attrs[id] = attrRef{node: owner, name: name}
		nodes = append(nodes, TextNode{
			ID:        id,
			Text:      text,
			Hash:      sitrans.HashText(text),
			ParentTag: owner.Data,
			Attr:      name,
		})
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			tag := strings.ToLower(n.Data)

			if p.skippedTags[tag] {
				return
			}

			if name, ok := sitrans.TranslatableAttrs[tag]; ok {
				if val, present := findAttr(n, name); present {
					if text := strings.TrimSpace(val); p.eligible(text) {
						addAttr(n, name, text)
					}
				}
			}

			if sitrans.TextBearingTags[tag] && hasSingleTextChild(n) {
				if text := strings.TrimSpace(n.FirstChild.Data); p.eligible(text) {
					addText(n, n.FirstChild, text)
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	doc.Each(func(i int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			walk(n)
		}
	})

	return page, nodes, nil
}

// Apply replaces each selected node's text or attribute value with its
// translation, by identity of the stored node reference. It never
// searches the document for the literal string: substring search can
// corrupt unrelated occurrences elsewhere in the tree.
func (p *HTMLProcessor) Apply(page *Page, translations map[string]string) (string, error) {
	for id, translated := range translations {
		if textNode, ok := page.texts[id]; ok {
			textNode.Data = preserveWhitespace(textNode.Data, translated)
			continue
		}
		if ref, ok := page.attrs[id]; ok {
			setAttr(ref.node, ref.name, translated)
			continue
		}
		return "", &sitrans.ProcessorError{Message: "unknown node reference " + id}
	}

	out, err := page.doc.Html()
	if err != nil {
		return "", &sitrans.ProcessorError{Message: "failed to serialize HTML", Cause: err}
	}
	return out, nil
}

// eligible applies the shared text rules: non-empty, not a numeric
// badge, and not already in the target language.
func (p *HTMLProcessor) eligible(text string) bool {
	if text == "" || sitrans.IsNumericBadge(text) {
		return false
	}

	if p.detector != nil {
		code, err := p.detector.Detect(text)
		if err != nil {
			return false
		}
		return sitrans.BaseLang(code) == sitrans.BaseLang(p.pair.Source)
	}

	// Script exclusion: target-script runes mean the text was already
	// translated by a previous run. Keeps in-place reruns idempotent.
	return !sitrans.ContainsScript(text, p.targetScript)
}

// hasSingleTextChild reports whether the element's only child is a text
// node. Elements whose text is fragmented across mixed children are not
// eligible.
func hasSingleTextChild(n *html.Node) bool {
	return n.FirstChild != nil && n.FirstChild == n.LastChild && n.FirstChild.Type == html.TextNode
}

func findAttr(n *html.Node, name string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, name, value string) {
	for i, attr := range n.Attr {
		if attr.Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

// preserveWhitespace keeps the original leading/trailing whitespace
// around the translated text.
func preserveWhitespace(original, translated string) string {
	leadingLen := len(original) - len(strings.TrimLeft(original, " \t\n\r"))
	leading := original[:leadingLen]

	trailingLen := len(original) - len(strings.TrimRight(original, " \t\n\r"))
	trailing := ""
	if trailingLen > 0 {
		trailing = original[len(original)-trailingLen:]
	}

	return leading + translated + trailing
}

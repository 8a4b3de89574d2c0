package sitrans

// LanguagePair is the ordered (source, target) combination a backend is
// configured to convert between. It is resolved once per run and
// immutable afterwards.
type LanguagePair struct {
	Source string // Source language code (e.g., "en")
	Target string // Target language code (e.g., "hi", "es_ES")
}

// CorruptReason tags why a cached page was judged unusable.
type CorruptReason string

const (
	// ReasonEmpty marks a zero-byte file.
	ReasonEmpty CorruptReason = "empty"
	// ReasonUnparseable marks markup the lenient parser rejected.
	ReasonUnparseable CorruptReason = "unparseable"
	// ReasonFeed marks an RSS/Atom feed cached where a page was expected.
	ReasonFeed CorruptReason = "syndication feed, not a page"
	// ReasonChallenge marks a page blocked by an anti-bot challenge.
	ReasonChallenge CorruptReason = "blocked by anti-bot challenge page"
)

// Verdict is the result of validating a cached page.
type Verdict struct {
	OK     bool
	Reason CorruptReason // Set only when OK is false
}

// TextNode represents one translatable unit extracted from a page:
// either the sole text child of a text-bearing element, or the value of
// a translatable attribute (alt, placeholder).
type TextNode struct {
	ID        string // Identifier for locating the node during Apply
	Text      string // Original text content (trimmed)
	Hash      string // SHA-256 hash of Text
	ParentTag string // Tag of the owning element ("p", "img", ...)
	Attr      string // Attribute name for attribute nodes, "" for text nodes
}

// IsAttr reports whether the node refers to an attribute value rather
// than element text.
func (n TextNode) IsAttr() bool {
	return n.Attr != ""
}

// SkippedTags contains tags whose entire subtree is excluded from
// traversal. Their content is never prose.
var SkippedTags = map[string]bool{
	"script": true,
	"style":  true,
}

// TextBearingTags is the closed set of elements whose direct text is
// eligible for translation.
var TextBearingTags = map[string]bool{
	"h1":    true,
	"h2":    true,
	"h3":    true,
	"h4":    true,
	"h5":    true,
	"h6":    true,
	"p":     true,
	"span":  true,
	"a":     true,
	"li":    true,
	"td":    true,
	"th":    true,
	"title": true,
}

// TranslatableAttrs maps tags to the attribute whose value is eligible
// for translation on that tag.
var TranslatableAttrs = map[string]string{
	"img":   "alt",
	"input": "placeholder",
}

// Stats summarizes one run over a mirrored site.
type Stats struct {
	Found      int // HTML files discovered under the input root
	Translated int // Files translated and committed this run
	Skipped    int // Files skipped because their target already exists
	Corrupt    int // Files judged corrupt (skipped, moved, or deleted)
	Nodes      int // Translatable nodes rewritten across all files
}

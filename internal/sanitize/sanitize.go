// Package sanitize removes personally-identifiable data from the raw
// timetable export before it is cached or served. Two kinds of redaction are
// applied, in order: whole roster subtrees are replaced by self-closing empty
// tags using text-level pattern matching (done before parsing so the parser
// never pays for bulk data destined for deletion), then the remaining
// document is parsed and a fixed list of personal attributes is stripped from
// the staff elements.
//
// Usage:
//
//	s := sanitize.New()
//	clean, err := s.Sanitize(raw)
//	// clean is pretty-printed XML with no personal data left
package sanitize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

// subtreeRule replaces one bulk subtree wholesale with an empty marker tag.
type subtreeRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// subtreeRules lists the roster subtrees that are dropped entirely. The
// patterns do not match the self-closing replacement forms, so applying them
// to already-sanitized output is a no-op.
var subtreeRules = []subtreeRule{
	{regexp.MustCompile(`(?s)<Eleves\b[^>]*>.*?</Eleves>`), "<Eleves/>"},
	{regexp.MustCompile(`(?s)<Parents\b[^>]*>.*?</Parents>`), "<Parents/>"},
}

// attributeRule names a parent/child element pair whose children carry
// personal attributes.
type attributeRule struct {
	parent string
	child  string
}

// attributeRules lists the element pairs subject to attribute stripping.
var attributeRules = []attributeRule{
	{parent: "Professeurs", child: "Professeur"},
	{parent: "Personnels", child: "Personnel"},
}

// prefixMarker flags a redacted-attribute entry as a prefix match: an entry
// ending in the marker removes every attribute whose name starts with the
// base name (entry minus the marker). "AdresseX" therefore removes Adresse1,
// Adresse2, and so on. All other entries are exact-match removals.
const prefixMarker = "X"

// redactedAttributes is the fixed list of attributes stripped from each
// matched child element. A missing attribute is a no-op.
var redactedAttributes = []string{
	"DateNaissance",
	"Telephone",
	"Portable",
	"Email",
	"CodePostal",
	"Ville",
	"AdresseX",
}

// Sanitizer applies the redaction rules above to a raw export document.
type Sanitizer struct{}

// New creates a Sanitizer.
func New() *Sanitizer {
	return &Sanitizer{}
}

// Sanitize strips the roster subtrees, parses the remaining document,
// removes the personal attributes, and returns the pretty-printed result.
// Sanitizing already-sanitized output is a no-op.
func (s *Sanitizer) Sanitize(raw string) (string, error) {
	text := stripSubtrees(raw)

	doc := etree.NewDocument()
	if err := doc.ReadFromString(text); err != nil {
		return "", fmt.Errorf("sanitize: parse export: %w", err)
	}

	for _, rule := range attributeRules {
		for _, parent := range doc.FindElements("//" + rule.parent) {
			for _, child := range parent.SelectElements(rule.child) {
				stripAttributes(child)
			}
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("sanitize: serialize export: %w", err)
	}
	return out, nil
}

// stripSubtrees applies the text-level subtree replacements.
func stripSubtrees(text string) string {
	for _, rule := range subtreeRules {
		text = rule.pattern.ReplaceAllString(text, rule.replacement)
	}
	return text
}

// stripAttributes removes every redacted attribute from el, expanding
// prefix-marker entries into a scan over the element's attribute names.
func stripAttributes(el *etree.Element) {
	for _, name := range redactedAttributes {
		base, isPrefix := strings.CutSuffix(name, prefixMarker)
		if !isPrefix {
			el.RemoveAttr(name)
			continue
		}

		var matched []string
		for _, attr := range el.Attr {
			if strings.HasPrefix(attr.Key, base) {
				matched = append(matched, attr.Key)
			}
		}
		for _, key := range matched {
			el.RemoveAttr(key)
		}
	}
}

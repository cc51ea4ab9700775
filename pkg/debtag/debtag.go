// Package debtag parses the debtags "Tag" field of a package record.
//
// A tag field is a comma separated list of tokens. A token of the form
// "facet::value" is faceted; anything else is a bare tag that only takes
// part in exact-match lookups.
package debtag

import (
	"strings"
	"unicode"

	"github.com/cperrin88/aptbridge/pkg/model"
)

// Separator splits a faceted tag into facet and value.
const Separator = "::"

// CategoryFacet is the facet that drives category discovery.
const CategoryFacet = "category"

// ParseTags returns the trimmed, non-empty tag tokens of pkg in order of
// appearance.
func ParseTags(pkg *model.Package) []string {
	if pkg == nil {
		return nil
	}
	raw := pkg.RawTags()
	if raw == nil {
		return nil
	}
	return Split(*raw)
}

// Split tokenizes a raw tag field.
func Split(raw string) []string {
	var tags []string
	for _, token := range strings.Split(raw, ",") {
		if token = strings.TrimSpace(token); token != "" {
			tags = append(tags, token)
		}
	}
	return tags
}

// SplitFacet splits tag on the first separator. ok is false for bare tags
// and for tags whose facet or value is empty.
func SplitFacet(tag string) (facet, value string, ok bool) {
	facet, value, found := strings.Cut(tag, Separator)
	if !found || facet == "" || value == "" {
		return "", "", false
	}
	return facet, value, true
}

// HasTag reports whether pkg carries exactly the tag given.
func HasTag(pkg *model.Package, tag string) bool {
	for _, t := range ParseTags(pkg) {
		if t == tag {
			return true
		}
	}
	return false
}

// HasFacetValue reports whether pkg has a tag with the given facet. An empty
// value matches any value of the facet.
func HasFacetValue(pkg *model.Package, facet, value string) bool {
	for _, t := range ParseTags(pkg) {
		f, v, ok := SplitFacet(t)
		if !ok || f != facet {
			continue
		}
		if value == "" || v == value {
			return true
		}
	}
	return false
}

// ValuesForFacet returns every value tagged under facet, duplicates included.
func ValuesForFacet(pkg *model.Package, facet string) []string {
	var values []string
	for _, t := range ParseTags(pkg) {
		if f, v, ok := SplitFacet(t); ok && f == facet {
			values = append(values, v)
		}
	}
	return values
}

// DeriveLabel turns an id like "chart-plotters" into "Chart Plotters".
func DeriveLabel(id string) string {
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(id))
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

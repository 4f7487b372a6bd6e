package javadoc

import (
	"cmp"
	"slices"
	"strings"
)

// tagRank orders tags within a comment. Names not listed sort last.
var tagRank = map[string]int{
	"author":      0,
	"version":     1,
	"param":       2,
	"return":      3,
	"throws":      4,
	"see":         5,
	"since":       6,
	"serial":      7,
	"serialField": 7,
	"serialData":  7,
	"deprecated":  8,
}

const unknownRank = 9

// TagRank returns the precedence of tags named name. Lower ranks sort first.
func TagRank(name string) int {
	rank, ok := tagRank[CanonicalTagName(name)]
	if !ok {
		return unknownRank
	}

	return rank
}

// SortTags returns a copy of tags in canonical order. Tags sort by
// [TagRank]; throws tags of equal rank sort by argument, ignoring case; all
// other ties keep their original order.
func SortTags(tags []Tag) []Tag {
	sorted := slices.Clone(tags)
	slices.SortStableFunc(sorted, compareTags)

	return sorted
}

func compareTags(a, b Tag) int {
	if c := cmp.Compare(TagRank(a.Name), TagRank(b.Name)); c != 0 {
		return c
	}

	if a.Name == "throws" && b.Name == "throws" {
		return cmp.Compare(strings.ToLower(a.Argument), strings.ToLower(b.Argument))
	}

	return 0
}

// pruneTags returns tags without the blank ones. See [Tag.IsBlank].
func pruneTags(tags []Tag) []Tag {
	return slices.DeleteFunc(slices.Clone(tags), Tag.IsBlank)
}

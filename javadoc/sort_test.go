package javadoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/docfix/javadoc"
)

func TestTagRank(t *testing.T) {
	t.Parallel()

	order := []string{"author", "version", "param", "return", "throws", "see", "since", "serial", "deprecated", "apiNote"}
	for i := 1; i < len(order); i++ {
		assert.Less(t, javadoc.TagRank(order[i-1]), javadoc.TagRank(order[i]), order[i])
	}

	assert.Equal(t, javadoc.TagRank("throws"), javadoc.TagRank("exception"))
	assert.Equal(t, javadoc.TagRank("serial"), javadoc.TagRank("serialField"))
	assert.Equal(t, javadoc.TagRank("serial"), javadoc.TagRank("serialData"))
	assert.Equal(t, javadoc.TagRank("custom"), javadoc.TagRank("apiNote"))
}

func TestSortTags(t *testing.T) {
	t.Parallel()

	tag := func(name, arg string) javadoc.Tag {
		return javadoc.Tag{Name: name, Argument: arg}
	}

	tcs := map[string]struct {
		input []javadoc.Tag
		want  []javadoc.Tag
	}{
		"empty": {
			input: nil,
			want:  nil,
		},
		"groups by rank": {
			input: []javadoc.Tag{
				tag("deprecated", ""),
				tag("return", ""),
				tag("param", "a"),
				tag("author", ""),
				tag("custom", ""),
				tag("since", ""),
			},
			want: []javadoc.Tag{
				tag("author", ""),
				tag("param", "a"),
				tag("return", ""),
				tag("since", ""),
				tag("deprecated", ""),
				tag("custom", ""),
			},
		},
		"throws sorted by argument ignoring case": {
			input: []javadoc.Tag{
				tag("throws", "ZException"),
				tag("throws", "bException"),
				tag("throws", "AException"),
			},
			want: []javadoc.Tag{
				tag("throws", "AException"),
				tag("throws", "bException"),
				tag("throws", "ZException"),
			},
		},
		"params keep source order": {
			input: []javadoc.Tag{
				tag("param", "z"),
				tag("return", ""),
				tag("param", "a"),
				tag("param", "m"),
			},
			want: []javadoc.Tag{
				tag("param", "z"),
				tag("param", "a"),
				tag("param", "m"),
				tag("return", ""),
			},
		},
		"authors keep source order": {
			input: []javadoc.Tag{
				{Name: "author", Text: "Zoe"},
				{Name: "author", Text: "Adam"},
			},
			want: []javadoc.Tag{
				{Name: "author", Text: "Zoe"},
				{Name: "author", Text: "Adam"},
			},
		},
		"unknown tags keep source order": {
			input: []javadoc.Tag{
				tag("implNote", ""),
				tag("apiNote", ""),
			},
			want: []javadoc.Tag{
				tag("implNote", ""),
				tag("apiNote", ""),
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, javadoc.SortTags(tc.input))
		})
	}
}

func TestSortTagsDoesNotModifyInput(t *testing.T) {
	t.Parallel()

	input := []javadoc.Tag{{Name: "return"}, {Name: "author"}}
	javadoc.SortTags(input)

	assert.Equal(t, []javadoc.Tag{{Name: "return"}, {Name: "author"}}, input)
}

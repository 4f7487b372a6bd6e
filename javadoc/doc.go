// Package javadoc normalizes Javadoc comments in Java source text.
//
// [Fix] rewrites every doc comment of a file into a canonical form and
// passes all other text through unchanged:
//
//	/**
//	 * Returns the sum of a and b.
//	 *
//	 * @param a the first addend
//	 * @param b the second addend
//	 * @return the sum
//	 */
//
// # Pipeline
//
// [Scan] splits source text into plain and doc comment [Region] values. It
// tracks string, character and text block literals, line comments, and
// ordinary block comments, so "/**" inside any of them never opens a doc
// comment. [Chunks] turns the regions into whole-line pieces, moving any
// code that shares a line with a doc comment onto a line of its own.
//
// Each doc comment is parsed with [ParseComment] into a [Comment], either a
// [Multiline] or a [SingleLine], and written back with [Render].
//
// # Normalization Rules
//
// Descriptions are trimmed, start with a capital letter, and end with a
// period unless they end in punctuation or a URL.
//
// Tags are built with [NewTag]. The legacy "@exception" becomes "@throws";
// a leading "- " bullet and a redundant "returns" on "@return" are dropped;
// the first letter is lowercased unless the first word is a proper noun, a
// name, or an acronym; and a lone trailing period is removed. Tags with
// nothing to say are pruned, and the rest are sorted with [SortTags].
//
// A comment left with neither description nor tags is removed from the
// output along with its lines.
//
// # Customization
//
// A [Fixer] created with [New] can recognize additional proper nouns,
// names, and abbreviations, and can cache rendered comments:
//
//	f := javadoc.New(
//	    javadoc.WithProperNouns("Kubernetes"),
//	    javadoc.WithAbbreviations("approx."),
//	    javadoc.WithCache(1024),
//	)
//
//	out, err := f.Fix(src)
package javadoc

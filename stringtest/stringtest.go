// Package stringtest builds multi-line test inputs and expectations with
// explicit line endings.
package stringtest

import "strings"

// Input dedents a raw string literal for use as test input. One leading and
// one trailing line feed are removed, the indentation shared by all
// non-blank lines is stripped, and whitespace-only lines become empty.
//
// Example:
//
//	src := stringtest.Input(`
//	    /**
//	     * Returns the sum.
//	     */
//	`) // -> "/**\n * Returns the sum.\n */"
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")

	prefix, found := "", false

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if !found {
			prefix, found = indent, true

			continue
		}

		for !strings.HasPrefix(indent, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""

			continue
		}

		lines[i] = strings.TrimPrefix(line, prefix)
	}

	return strings.Join(lines, "\n")
}

// JoinLF joins lines with LF line endings. End the list with "" for a
// trailing line ending:
//
//	stringtest.JoinLF("/** Doc. */", "class A {}", "")
//	// -> "/** Doc. */\nclass A {}\n"
func JoinLF(lines ...string) string {
	return strings.Join(lines, "\n")
}

// JoinCRLF joins lines with CRLF line endings, as written on Windows.
func JoinCRLF(lines ...string) string {
	return strings.Join(lines, "\r\n")
}

// JoinCR joins lines with bare CR line endings, as written by classic
// Mac OS editors.
func JoinCR(lines ...string) string {
	return strings.Join(lines, "\r")
}

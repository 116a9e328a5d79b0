// Copyright © 2025 The cljsym authors

package classify

// ValidMacroPosition reports whether pos in src is a position where a
// macro invocation is grammatically possible: immediately after an
// opening list delimiter, or immediately after the two-character #'
// var-quote sequence. Positions outside src (including the very start of
// the buffer, which has no preceding character) are never valid.
func ValidMacroPosition(src string, pos int) bool {
	if pos <= 0 || pos > len(src) {
		return false
	}
	switch src[pos-1] {
	case '(':
		return true
	case '\'':
		return pos >= 2 && src[pos-2] == '#'
	}
	return false
}

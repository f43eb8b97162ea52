package transliteration

import "unicode/utf8"

// countChars returns the number of characters (runes) in s.
func countChars(s string) int {
	return utf8.RuneCountInString(s)
}

// sliceTo returns the first n characters of s.
func sliceTo(s string, n int) string {
	return s[:byteOffset(s, n)]
}

// sliceFrom returns s without its first n characters.
func sliceFrom(s string, n int) string {
	return s[byteOffset(s, n):]
}

// byteOffset is the byte index just past the nth character of s, or len(s)
// when s is shorter than n characters.
func byteOffset(s string, n int) int {
	i := 0
	for ; n > 0 && i < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}

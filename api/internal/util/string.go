package util

import "unicode/utf8"

// Truncate режет строку до max байт, не разрывая руну, и добавляет «…».
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}

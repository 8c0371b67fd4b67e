// Package text holds rune-aware string helpers. Article content and
// summaries mix CJK and Latin script, so byte-based length checks would
// misjudge Chinese text by a factor of three.
package text

// CountRunes returns the number of Unicode code points in s.
//
//	CountRunes("hello")  // 5
//	CountRunes("人工智能") // 4
//	CountRunes("AI生成")  // 4
func CountRunes(s string) int {
	return len([]rune(s))
}

// TruncateRunes cuts s to at most max runes. Cutting on rune boundaries
// keeps truncated Chinese content valid UTF-8.
func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

package summarizer

import (
	"regexp"
	"strings"
	"unicode"
)

// Label-based extraction runs before any heuristic. Patterns are ordered from
// most to least specific; the first capture wins. Both fullwidth （：） and
// ASCII (:) separators appear in model output, so every pattern accepts both.
var (
	primaryPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*\**中文摘要\**\s*[：:]\s*(.+?)\s*$`),
		regexp.MustCompile(`(?m)^\s*\**中文\**\s*[：:]\s*(.+?)\s*$`),
		regexp.MustCompile(`(?m)^\s*\**Chinese\**\s*[：:]\s*(.+?)\s*$`),
		regexp.MustCompile(`(?m)^\s*\**Primary\**\s*[：:]\s*(.+?)\s*$`),
	}
	secondaryPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*\**英文摘要\**\s*[：:]\s*(.+?)\s*$`),
		regexp.MustCompile(`(?m)^\s*\**English\**\s*[：:]\s*(.+?)\s*$`),
		regexp.MustCompile(`(?m)^\s*\**英文\**\s*[：:]\s*(.+?)\s*$`),
		regexp.MustCompile(`(?m)^\s*\**Secondary\**\s*[：:]\s*(.+?)\s*$`),
	}

	anyLabel = regexp.MustCompile(`^\s*\**(中文摘要|中文|Chinese|英文摘要|英文|English|Primary|Secondary)\**\s*[：:]`)
)

// ExtractPrimary pulls the Chinese summary out of a model response.
// It tries the labeled patterns in order, then falls back to the first
// unlabeled line that is predominantly CJK text. Returns empty when
// nothing qualifies.
func ExtractPrimary(response string) string {
	for _, re := range primaryPatterns {
		if m := re.FindStringSubmatch(response); m != nil {
			if s := cleanExtracted(m[1]); s != "" {
				return s
			}
		}
	}

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || anyLabel.MatchString(line) {
			continue
		}
		if cjkRatio(line) >= 0.3 {
			return cleanExtracted(line)
		}
	}
	return ""
}

// ExtractSecondary pulls the English summary out of a model response.
// Labeled patterns first, then the first unlabeled line that is mostly
// ASCII letters and carries no CJK text at all.
func ExtractSecondary(response string) string {
	for _, re := range secondaryPatterns {
		if m := re.FindStringSubmatch(response); m != nil {
			if s := cleanExtracted(m[1]); s != "" {
				return s
			}
		}
	}

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || anyLabel.MatchString(line) {
			continue
		}
		if containsCJK(line) {
			continue
		}
		if letterRatio(line) >= 0.5 {
			return cleanExtracted(line)
		}
	}
	return ""
}

// cleanExtracted strips symmetric quoting and stray markdown emphasis that
// models wrap around the requested lines.
func cleanExtracted(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "*")
	for _, pair := range [][2]string{{`"`, `"`}, {"“", "”"}, {"「", "」"}, {"'", "'"}} {
		if strings.HasPrefix(s, pair[0]) && strings.HasSuffix(s, pair[1]) && len(s) > len(pair[0])+len(pair[1]) {
			s = strings.TrimSuffix(strings.TrimPrefix(s, pair[0]), pair[1])
		}
	}
	return strings.TrimSpace(s)
}

func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

func containsCJK(s string) bool {
	for _, r := range s {
		if isCJK(r) {
			return true
		}
	}
	return false
}

// cjkRatio returns the fraction of non-space runes that are Han characters.
func cjkRatio(s string) float64 {
	var total, cjk int
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if isCJK(r) {
			cjk++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(cjk) / float64(total)
}

// letterRatio returns the fraction of non-space runes that are ASCII letters.
func letterRatio(s string) float64 {
	var total, letters int
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			letters++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(letters) / float64(total)
}

// TruncateSummary caps a summary at max runes, appending an ellipsis marker
// when the input was cut.
func TruncateSummary(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

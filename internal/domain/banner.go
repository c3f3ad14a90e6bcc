package domain

import (
	"strings"
	"unicode"
)

// bannerStopWords mark a line as prose rather than part of a banner.
var bannerStopWords = []string{"Welcome", "Documentation", "Management", "Support", "Last login", "Run", "*"}

const bannerSymbolRatio = 0.7

// ExtractBanner returns the longest contiguous run of symbol-heavy lines in a
// login greeting. The first run wins ties. ok is false when no line qualifies.
func ExtractBanner(text string) (string, bool) {
	lines := strings.Split(text, "\n")

	var best, current []string
	for _, line := range lines {
		if isBannerLine(line) {
			current = append(current, line)
			continue
		}
		if len(current) > len(best) {
			best = current
		}
		current = nil
	}
	if len(current) > len(best) {
		best = current
	}

	if len(best) == 0 {
		return "", false
	}

	return strings.Join(best, "\n"), true
}

func isBannerLine(line string) bool {
	for _, word := range bannerStopWords {
		if strings.Contains(line, word) {
			return false
		}
	}

	runes := []rune(line)
	nonLetters := 0
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			nonLetters++
		}
	}

	return float64(nonLetters) > float64(len(runes))*bannerSymbolRatio
}

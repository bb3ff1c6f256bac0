package trend

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"trending-tickers/internal/types"
)

// maxTickerLen is the longest token still treated as a symbol.
const maxTickerLen = 5

// IsTickerCandidate reports whether a whitespace-delimited token looks like a
// ticker: 1 to 5 letters, all upper case. Punctuation disqualifies the token,
// so "AAPL," and "$TSLA" are rejected.
func IsTickerCandidate(token string) bool {
	n := utf8.RuneCountInString(token)
	if n == 0 || n > maxTickerLen {
		return false
	}
	for _, r := range token {
		if !unicode.IsLetter(r) || !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// ExtractTickers scans contents in order and returns the first limit unique
// candidates, keeping first-occurrence order. Words like "CEO" or "A" pass too.
func ExtractTickers(contents []string, limit int) types.TrendingSet {
	set := types.TrendingSet{}
	if limit <= 0 {
		return set
	}
	seen := make(map[string]struct{})
	for _, content := range contents {
		for _, word := range strings.Fields(content) {
			if !IsTickerCandidate(word) {
				continue
			}
			if _, ok := seen[word]; ok {
				continue
			}
			seen[word] = struct{}{}
			set = append(set, types.TickerCandidate(word))
			if len(set) == limit {
				return set
			}
		}
	}
	return set
}

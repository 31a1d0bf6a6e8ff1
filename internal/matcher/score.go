package matcher

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// TokenSortRatio scores the similarity of a and b in [0,100], ignoring case, punctuation and word order.
//
// Returns 0 when either side has no words.
func TokenSortRatio(a, b string) int {
	sa, sb := sortTokens(fullProcess(a)), sortTokens(fullProcess(b))

	// punctuation-only input still compares equal to itself
	if sa == "" && sb == "" {
		sa, sb = sortTokens(strings.ToLower(a)), sortTokens(strings.ToLower(b))
	}

	if sa == "" || sb == "" {
		return 0
	}

	return ratio(sa, sb)
}

// fullProcess lowercases s and replaces every rune that is not a letter or digit with a space.
func fullProcess(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.TrimSpace(b.String())
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// ratio is the indel similarity: matched runes over total runes, as a rounded percentage.
func ratio(a, b string) int {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 100
	}

	dist := edlib.LCSEditDistance(a, b)
	return int(math.RoundToEven(100 * float64(total-dist) / float64(total)))
}

// Scores scores every title against query, keeping the order of titles.
func Scores(query string, titles []string) []int {
	scores := make([]int, len(titles))
	for i, title := range titles {
		scores[i] = TokenSortRatio(query, title)
	}
	return scores
}

// Best returns the index and score of the highest scoring candidate title for query.
//
// Only strictly greater scores replace the current best, so the first of equal candidates wins.
// Returns -1 when titles is empty.
func Best(query string, titles []string) (int, int) {
	return highest(Scores(query, titles))
}

func highest(scores []int) (int, int) {
	best, bestScore := -1, -1
	for i, score := range scores {
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best, bestScore
}

package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/ytfolder/internal/matcher"
	"github.com/desertthunder/ytfolder/internal/models"
)

var _ list.Item = candidateItem{}

// candidateItem wraps [models.Candidate] to implement [list.Item].
type candidateItem struct {
	index     int
	candidate models.Candidate
	score     int
	threshold int
}

func newCandidateItems(req matcher.ChoiceRequest) []list.Item {
	items := make([]list.Item, len(req.Candidates))
	for i, c := range req.Candidates {
		items[i] = candidateItem{
			index:     i + 1,
			candidate: c,
			score:     scoreAt(req.Scores, i),
			threshold: req.Threshold,
		}
	}
	return items
}

func (i candidateItem) FilterValue() string { return i.candidate.Title }
func (i candidateItem) Title() string       { return fmt.Sprintf("%d. %s", i.index, i.candidate.Title) }
func (i candidateItem) Description() string {
	if i.threshold <= 0 {
		return fmt.Sprintf("%s • score %d", i.candidate.ChannelName, i.score)
	}
	return fmt.Sprintf("%s • score %s", i.candidate.ChannelName, styles.Score(i.score, i.threshold))
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func scoreAt(scores []int, i int) int {
	if i < len(scores) {
		return scores[i]
	}
	return 0
}

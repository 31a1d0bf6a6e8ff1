package matcher_test

import (
	"testing"

	"github.com/desertthunder/ytfolder/internal/matcher"
)

func TestTokenSortRatio(t *testing.T) {
	t.Run("identical strings score 100", func(t *testing.T) {
		for _, s := range []string{"Bohemian Rhapsody", "x", "Björk - Jóga", "!!!", "AC/DC", "2 + 2 = 5"} {
			if got := matcher.TokenSortRatio(s, s); got != 100 {
				t.Errorf("TokenSortRatio(%q, %q) = %d, want 100", s, s, got)
			}
		}
	})

	tc := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "word order", a: "Imagine John Lennon", b: "John Lennon Imagine", want: 100},
		{name: "case and punctuation", a: "Queen – Bohemian Rhapsody", b: "bohemian rhapsody QUEEN", want: 100},
		{name: "hyphenated display vs query", a: "Imagine John Lennon", b: "John Lennon - Imagine", want: 100},
		{name: "artist prefix", a: "Bohemian Rhapsody", b: "Queen – Bohemian Rhapsody", want: 85},
		{name: "decorated title", a: "Bohemian Rhapsody", b: "Queen – Bohemian Rhapsody (Official Video)", want: 62},
		{name: "one substitution", a: "abc", b: "abd", want: 67},
		{name: "half rounds to even", a: "abcdefgh", b: "hijklmno", want: 12},
		{name: "nothing shared", a: "abc", b: "xyz", want: 0},
		{name: "empty side", a: "", b: "Bohemian Rhapsody", want: 0},
		{name: "both empty", a: "", b: "", want: 0},
		{name: "whitespace only", a: "   ", b: "   ", want: 0},
		{name: "punctuation vs words", a: "!!!", b: "hello", want: 0},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := matcher.TokenSortRatio(tt.a, tt.b); got != tt.want {
				t.Errorf("TokenSortRatio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}

	t.Run("stays within bounds", func(t *testing.T) {
		pairs := [][2]string{
			{"Hey Jude", "The Beatles - Hey Jude (Remastered 2015)"},
			{"Smells Like Teen Spirit Nirvana", "Nirvana - Smells Like Teen Spirit (Official Music Video)"},
			{"日本語 タイトル", "タイトル 日本語"},
		}
		for _, p := range pairs {
			if got := matcher.TokenSortRatio(p[0], p[1]); got < 0 || got > 100 {
				t.Errorf("TokenSortRatio(%q, %q) = %d out of range", p[0], p[1], got)
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		a, b := "Hey Jude", "The Beatles - Hey Jude (Remastered 2015)"
		first := matcher.TokenSortRatio(a, b)
		for range 10 {
			if got := matcher.TokenSortRatio(a, b); got != first {
				t.Fatalf("expected stable score %d, got %d", first, got)
			}
		}
	})
}

func TestBest(t *testing.T) {
	t.Run("picks highest score", func(t *testing.T) {
		idx, score := matcher.Best("Hey Jude", []string{"Let It Be", "The Beatles - Hey Jude", "Hey Jude"})
		if idx != 2 || score != 100 {
			t.Errorf("expected index 2 with score 100, got %d/%d", idx, score)
		}
	})

	t.Run("first candidate wins ties", func(t *testing.T) {
		idx, _ := matcher.Best("Hey Jude", []string{"Hey Jude", "hey jude", "HEY JUDE!"})
		if idx != 0 {
			t.Errorf("expected first of equal candidates, got %d", idx)
		}
	})

	t.Run("zero scores still select the first candidate", func(t *testing.T) {
		idx, score := matcher.Best("abc", []string{"xyz", "uvw"})
		if idx != 0 || score != 0 {
			t.Errorf("expected index 0 with score 0, got %d/%d", idx, score)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if idx, _ := matcher.Best("Hey Jude", nil); idx != -1 {
			t.Errorf("expected -1 for no titles, got %d", idx)
		}
	})
}

func TestScores(t *testing.T) {
	got := matcher.Scores("Bohemian Rhapsody", []string{"Bohemian Rhapsody", "Queen – Bohemian Rhapsody", "xyz"})
	want := []int{100, 85, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Scores()[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	if got := matcher.Scores("q", nil); len(got) != 0 {
		t.Errorf("expected no scores, got %v", got)
	}
}

package censor

import (
	"video-censor/domain/audio"
	"video-censor/domain/transcript"
)

// Match is a word that hit the denylist together with the span that silences it
type Match struct {
	Word  transcript.Word
	Token string
	Span  audio.SilenceSpan
}

// Matcher finds profane words in a transcript and computes their silence spans
type Matcher struct {
	denylist Denylist
	adjuster *Adjuster
}

// NewMatcher creates a Matcher for the given denylist and calibration
func NewMatcher(denylist Denylist, timing Timing) *Matcher {
	return &Matcher{
		denylist: denylist,
		adjuster: NewAdjuster(timing),
	}
}

// IsProfane normalizes the word and checks it against the denylist
func (m *Matcher) IsProfane(w transcript.Word) bool {
	return m.denylist.Matches(w.Token())
}

// Scan returns a Match for every profane word, in transcript order
func (m *Matcher) Scan(words []transcript.Word) []Match {
	var matches []Match
	for _, w := range words {
		token := w.Token()
		if !m.denylist.Matches(token) {
			continue
		}
		matches = append(matches, Match{
			Word:  w,
			Token: token,
			Span:  m.adjuster.Span(w),
		})
	}
	return matches
}

// Spans extracts the silence spans from a list of matches
func Spans(matches []Match) []audio.SilenceSpan {
	spans := make([]audio.SilenceSpan, len(matches))
	for i, m := range matches {
		spans[i] = m.Span
	}
	return spans
}

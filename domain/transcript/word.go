package transcript

// Word is a single recognized word with its timing in seconds
type Word struct {
	Text  string
	Start float64
	End   float64
}

// Token returns the normalized form of the word's text
func (w Word) Token() string {
	return Normalize(w.Text)
}

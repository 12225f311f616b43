package defs

type Mode string

const (
	// Character scan, edit distance.
	ModeDistance Mode = "distance"
	// Character scan, Jaro-Winkler similarity.
	ModeSimilarity Mode = "similarity"
	// Word windows, per-word edit distance.
	ModeWindow Mode = "window"
)

type Config struct {
	Terms []Term

	Replacement string
	ExactCase   bool
	FoldASCII   bool

	List bool
	Pipe bool
	Jobs int

	Vcs      string
	Patterns []string

	NoCache bool
}

type Term struct {
	Text string
	Mode Mode

	MaxDistance   int
	MinSimilarity float64
	Threshold     float64

	// Overrides Config.Replacement when non-empty.
	Replacement string
}

type Match struct {
	Index int

	Term  Term
	Text  string
	Score float64
}

package textobject

// Candidate is one concrete delimiter shape considered when resolving an
// ambiguous object kind. The two variants dispatch to the matcher method
// appropriate to their shape; Select depends only on this interface.
//
// The match method is unexported on purpose: the variant set is closed.
type Candidate interface {
	match(m Matcher, req Request) (Span, error)
}

// Symmetric is a candidate whose opening and closing delimiter are the same
// single character, e.g. " or $.
type Symmetric struct {
	Delim byte
}

func (s Symmetric) match(m Matcher, req Request) (Span, error) {
	return m.MatchSymmetric(s.Delim, req)
}

// Paired is a candidate with distinct open and close tokens, each one or
// more bytes, e.g. `` and '' or \[ and \].
type Paired struct {
	Open  string
	Close string
}

func (p Paired) match(m Matcher, req Request) (Span, error) {
	return m.MatchPaired(p.Open, p.Close, req)
}

// Candidate sets for the ambiguous object kinds. Enumeration order is part
// of the contract: ties on width keep the earlier candidate.
var (
	// QuoteCandidates covers TeX-style ``…'' quoting and plain "…".
	QuoteCandidates = []Candidate{
		Paired{Open: "``", Close: "''"},
		Symmetric{Delim: '"'},
	}

	// MathCandidates covers display math \[…\] and inline math \(…\).
	MathCandidates = []Candidate{
		Paired{Open: `\[`, Close: `\]`},
		Paired{Open: `\(`, Close: `\)`},
	}

	// DollarCandidates covers $…$ math. Single-candidate: no narrowing.
	DollarCandidates = []Candidate{
		Symmetric{Delim: '$'},
	}
)

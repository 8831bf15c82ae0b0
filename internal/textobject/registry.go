package textobject

// Resolver resolves one (kind, variant) pair against the snapshot the
// registry was built over.
type Resolver func(req Request) (Span, error)

// Kind keys for the five object kinds. These are the runes the editor's
// text object keymap dispatches on.
const (
	KindQuote       = '"'
	KindDollarMath  = '$'
	KindBracketMath = '\\'
	KindMacro       = 'm'
	KindEnvironment = 'e'
)

// Kinds lists every kind key in display order.
var Kinds = []rune{KindQuote, KindDollarMath, KindBracketMath, KindMacro, KindEnvironment}

// Registry maps object kinds to their inner and outer resolvers. It is
// bound to one document snapshot; callers rebuild it when the document
// changes. Pure configuration, no state beyond the collaborators.
type Registry struct {
	matcher Matcher
	macro   *MacroResolver
	env     *EnvironmentResolver
}

// NewRegistry builds a registry over one snapshot and its collaborators.
func NewRegistry(text Text, m Matcher, scan BoundaryScanner) *Registry {
	return &Registry{
		matcher: m,
		macro:   NewMacroResolver(text, scan),
		env:     NewEnvironmentResolver(text, scan),
	}
}

// Install writes all ten (kind × inner/outer) bindings into the two
// caller-owned maps. Reinstalling overwrites prior bindings for the same
// keys and has no other effect.
func (r *Registry) Install(inner, outer map[rune]Resolver) {
	inner[KindQuote] = r.block(QuoteCandidates, false)
	outer[KindQuote] = r.block(QuoteCandidates, true)

	inner[KindDollarMath] = r.block(DollarCandidates, false)
	outer[KindDollarMath] = r.block(DollarCandidates, true)

	inner[KindBracketMath] = r.block(MathCandidates, false)
	outer[KindBracketMath] = r.block(MathCandidates, true)

	inner[KindMacro] = r.macro.Inner
	outer[KindMacro] = r.macro.Outer

	inner[KindEnvironment] = r.env.Inner
	outer[KindEnvironment] = r.env.Outer
}

// block builds a BlockSelector resolver over a candidate set with the
// variant pinned.
func (r *Registry) block(candidates []Candidate, outer bool) Resolver {
	return func(req Request) (Span, error) {
		req.Outer = outer
		return Select(r.matcher, candidates, req)
	}
}

package textobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(doc string) *Registry {
	m := &stubMatcher{}
	scan := &fakeScanner{text: doc}
	return NewRegistry(fakeText(doc), m, scan)
}

func TestRegistry_Install_AllKindsBound(t *testing.T) {
	r := newTestRegistry("doc")
	inner := make(map[rune]Resolver)
	outer := make(map[rune]Resolver)

	r.Install(inner, outer)

	for _, kind := range Kinds {
		assert.Contains(t, inner, kind)
		assert.Contains(t, outer, kind)
	}
	assert.Len(t, inner, len(Kinds))
	assert.Len(t, outer, len(Kinds))
}

func TestRegistry_Install_Idempotent(t *testing.T) {
	r := newTestRegistry("doc")
	inner := make(map[rune]Resolver)
	outer := make(map[rune]Resolver)

	r.Install(inner, outer)
	r.Install(inner, outer)

	assert.Len(t, inner, len(Kinds))
	assert.Len(t, outer, len(Kinds))
}

func TestRegistry_BlockResolverPinsVariant(t *testing.T) {
	// The installed quote resolvers must override whatever the request says.
	doc := `"abc"`
	m := &recordingMatcher{span: Span{Start: 0, End: 5}}
	r := NewRegistry(fakeText(doc), m, &fakeScanner{text: doc})
	inner := make(map[rune]Resolver)
	outer := make(map[rune]Resolver)
	r.Install(inner, outer)

	_, err := inner[KindQuote](Request{Cursor: 2, Outer: true})
	require.NoError(t, err)
	assert.False(t, m.lastReq.Outer)

	_, err = outer[KindQuote](Request{Cursor: 2, Outer: false})
	require.NoError(t, err)
	assert.True(t, m.lastReq.Outer)
}

func TestRegistry_MacroKindUsesMacroResolver(t *testing.T) {
	doc := `\foo{bar}`
	scan := &fakeScanner{text: doc, macroStart: 0, macroEnd: len(doc), macroOK: true}
	r := NewRegistry(fakeText(doc), &stubMatcher{}, scan)
	inner := make(map[rune]Resolver)
	outer := make(map[rune]Resolver)
	r.Install(inner, outer)

	span, err := inner[KindMacro](Request{Cursor: 6})
	require.NoError(t, err)
	assert.Equal(t, "bar", doc[span.Start:span.End])

	span, err = outer[KindMacro](Request{Cursor: 6})
	require.NoError(t, err)
	assert.Equal(t, doc, doc[span.Start:span.End])
}

func TestRegistry_EnvironmentKindUsesEnvironmentResolver(t *testing.T) {
	doc := `\begin{thm}x\end{thm}`
	scan := &fakeScanner{text: doc, envBegin: 0, envEnd: len(doc) - 1, envOK: true}
	r := NewRegistry(fakeText(doc), &stubMatcher{}, scan)
	inner := make(map[rune]Resolver)
	outer := make(map[rune]Resolver)
	r.Install(inner, outer)

	span, err := inner[KindEnvironment](Request{Cursor: 11})
	require.NoError(t, err)
	assert.Equal(t, "x", doc[span.Start:span.End])
}

// recordingMatcher captures the last request it saw.
type recordingMatcher struct {
	span    Span
	lastReq Request
}

func (m *recordingMatcher) MatchSymmetric(_ byte, req Request) (Span, error) {
	m.lastReq = req
	return m.span, nil
}

func (m *recordingMatcher) MatchPaired(_, _ string, req Request) (Span, error) {
	m.lastReq = req
	return m.span, nil
}

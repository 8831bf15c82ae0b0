package resolve

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/texel/internal/document"
	"github.com/zjrosen/texel/internal/testutil"
	"github.com/zjrosen/texel/internal/textobject"
)

func newService(t *testing.T, text string, opts ...Option) *Service {
	t.Helper()
	return NewService(document.NewSnapshot(text), opts...)
}

func cursorAt(t *testing.T, text, sub string) int {
	t.Helper()
	idx := strings.Index(text, sub)
	require.GreaterOrEqual(t, idx, 0, "substring %q not in %q", sub, text)
	return idx
}

func TestResolve_InnerQuote(t *testing.T) {
	text := `say "hello" now`
	svc := newService(t, text)

	res, err := svc.Resolve(context.Background(), textobject.KindQuote,
		textobject.Request{Cursor: cursorAt(t, text, "hello")})

	require.NoError(t, err)
	assert.Equal(t, "hello", res.Text)
	assert.False(t, res.Outer)
}

func TestResolve_OuterQuoteIncludesDelimiters(t *testing.T) {
	text := `say "hello" now`
	svc := newService(t, text)

	res, err := svc.Resolve(context.Background(), textobject.KindQuote,
		textobject.Request{Cursor: cursorAt(t, text, "hello"), Outer: true})

	require.NoError(t, err)
	assert.Equal(t, `"hello"`, res.Text)
}

func TestResolve_TexQuotesPreferredWhenNarrower(t *testing.T) {
	d := testutil.NewDoc(t).Plain("a ").Quoted("tex style").Plain(" b")
	svc := newService(t, d.Build())

	res, err := svc.Resolve(context.Background(), textobject.KindQuote,
		textobject.Request{Cursor: d.Offset("style", 1)})

	require.NoError(t, err)
	assert.Equal(t, "tex style", res.Text)
}

func TestResolve_MacroInnerAndOuter(t *testing.T) {
	d := testutil.NewDoc(t).Plain("see ").Macro("emph", "this text").Plain(" here")
	text := d.Build()
	svc := newService(t, text)
	cursor := d.Offset("this", 1)

	inner, err := svc.Resolve(context.Background(), textobject.KindMacro,
		textobject.Request{Cursor: cursor})
	require.NoError(t, err)
	assert.Equal(t, "this text", inner.Text)

	outer, err := svc.Resolve(context.Background(), textobject.KindMacro,
		textobject.Request{Cursor: cursor, Outer: true})
	require.NoError(t, err)
	assert.Equal(t, `\emph{this text}`, outer.Text)
}

func TestResolve_EmptyMacroInnerSelectsName(t *testing.T) {
	text := `a \foo{} b`
	svc := newService(t, text)

	res, err := svc.Resolve(context.Background(), textobject.KindMacro,
		textobject.Request{Cursor: cursorAt(t, text, "foo")})

	require.NoError(t, err)
	assert.Equal(t, "foo", res.Text)
}

func TestResolve_Environment(t *testing.T) {
	d := testutil.NewDoc(t).Env("itemize", `\item one`)
	text := d.Build()
	svc := newService(t, text)
	cursor := d.Offset("one", 1)

	inner, err := svc.Resolve(context.Background(), textobject.KindEnvironment,
		textobject.Request{Cursor: cursor})
	require.NoError(t, err)
	assert.Equal(t, `\item one`, inner.Text)

	outer, err := svc.Resolve(context.Background(), textobject.KindEnvironment,
		textobject.Request{Cursor: cursor, Outer: true})
	require.NoError(t, err)
	assert.Equal(t, text, outer.Text)
}

func TestResolve_DollarMath(t *testing.T) {
	d := testutil.NewDoc(t).Plain("where ").InlineMath("x+y").Plain(" holds")
	svc := newService(t, d.Build())

	res, err := svc.Resolve(context.Background(), textobject.KindDollarMath,
		textobject.Request{Cursor: d.Offset("x+y", 1)})

	require.NoError(t, err)
	assert.Equal(t, "x+y", res.Text)
}

func TestResolve_BracketMathCount(t *testing.T) {
	text := `\( a \( b \) c \)`
	svc := newService(t, text)
	cursor := cursorAt(t, text, "b")

	first, err := svc.Resolve(context.Background(), textobject.KindBracketMath,
		textobject.Request{Cursor: cursor, Count: 1})
	require.NoError(t, err)
	assert.Equal(t, " b ", first.Text)

	second, err := svc.Resolve(context.Background(), textobject.KindBracketMath,
		textobject.Request{Cursor: cursor, Count: 2})
	require.NoError(t, err)
	assert.Equal(t, ` a \( b \) c `, second.Text)
}

func TestResolve_NotFound(t *testing.T) {
	svc := newService(t, "plain prose only")

	_, err := svc.Resolve(context.Background(), textobject.KindQuote,
		textobject.Request{Cursor: 3})

	assert.ErrorIs(t, err, textobject.ErrNotFound)
}

func TestResolve_UnknownKind(t *testing.T) {
	svc := newService(t, "text")

	_, err := svc.Resolve(context.Background(), 'z', textobject.Request{Cursor: 0})

	assert.ErrorContains(t, err, "unknown text object kind")
}

func TestResolve_CacheSurvivesRepeatCalls(t *testing.T) {
	text := `say "hello" now`
	svc := newService(t, text)
	req := textobject.Request{Cursor: cursorAt(t, text, "hello")}

	first, err := svc.Resolve(context.Background(), textobject.KindQuote, req)
	require.NoError(t, err)
	second, err := svc.Resolve(context.Background(), textobject.KindQuote, req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolve_NewRevisionResolvesFreshText(t *testing.T) {
	text := `say "hello" now`
	svc := newService(t, text)
	req := textobject.Request{Cursor: cursorAt(t, text, "hello")}

	res, err := svc.Resolve(context.Background(), textobject.KindQuote, req)
	require.NoError(t, err)
	assert.Equal(t, "hello", res.Text)

	edited := `say "howdy" now`
	svc = svc.WithSnapshot(svc.Snapshot().WithText(edited))

	res, err = svc.Resolve(context.Background(), textobject.KindQuote, req)
	require.NoError(t, err)
	assert.Equal(t, "howdy", res.Text)
}

func TestResolve_CacheDisabled(t *testing.T) {
	text := `say "hello" now`
	svc := newService(t, text, WithCache(false))

	res, err := svc.Resolve(context.Background(), textobject.KindQuote,
		textobject.Request{Cursor: cursorAt(t, text, "hello")})

	require.NoError(t, err)
	assert.Equal(t, "hello", res.Text)
}

func TestResolve_BoundsConstrainMatch(t *testing.T) {
	text := `\( a \( b \) c \)`
	svc := newService(t, text)
	inner := textobject.Span{Start: cursorAt(t, text, " b "), End: cursorAt(t, text, " b ") + 3}

	res, err := svc.Resolve(context.Background(), textobject.KindBracketMath,
		textobject.Request{Cursor: cursorAt(t, text, "b"), Bounds: &inner, Count: 2})

	require.NoError(t, err)
	assert.Equal(t, ` a \( b \) c `, res.Text)
}

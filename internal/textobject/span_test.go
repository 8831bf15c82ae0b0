package textobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpan_Width(t *testing.T) {
	assert.Equal(t, 5, Span{Start: 3, End: 8}.Width())
	assert.Equal(t, 0, Span{Start: 4, End: 4}.Width())
}

func TestSpan_Empty(t *testing.T) {
	assert.True(t, Span{Start: 4, End: 4}.Empty())
	assert.False(t, Span{Start: 4, End: 5}.Empty())
}

func TestSpan_ContainsOffset_EndInclusive(t *testing.T) {
	s := Span{Start: 2, End: 6}

	assert.True(t, s.ContainsOffset(2))
	assert.True(t, s.ContainsOffset(4))
	assert.True(t, s.ContainsOffset(6)) // cursor on a closing delimiter
	assert.False(t, s.ContainsOffset(1))
	assert.False(t, s.ContainsOffset(7))
}

func TestSpan_ContainsSpan(t *testing.T) {
	s := Span{Start: 2, End: 10}

	assert.True(t, s.ContainsSpan(Span{Start: 2, End: 10}))
	assert.True(t, s.ContainsSpan(Span{Start: 4, End: 4}))
	assert.False(t, s.ContainsSpan(Span{Start: 1, End: 5}))
	assert.False(t, s.ContainsSpan(Span{Start: 5, End: 11}))
}

func TestRequest_Anchor_CursorOnly(t *testing.T) {
	req := Request{Cursor: 7}

	assert.Equal(t, Span{Start: 7, End: 7}, req.Anchor())
}

func TestRequest_Anchor_BoundsWin(t *testing.T) {
	req := Request{Cursor: 7, Bounds: &Span{Start: 3, End: 9}}

	assert.Equal(t, Span{Start: 3, End: 9}, req.Anchor())
}

func TestRequest_EffectiveCount(t *testing.T) {
	assert.Equal(t, 1, Request{}.EffectiveCount())
	assert.Equal(t, 1, Request{Count: -2}.EffectiveCount())
	assert.Equal(t, 3, Request{Count: 3}.EffectiveCount())
}

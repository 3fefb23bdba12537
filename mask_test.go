package genedist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMasksNoMarkers(t *testing.T) {
	stripped, ed, gen := ExtractMasks("kitten")
	assert.Equal(t, "kitten", stripped)
	assert.Nil(t, ed, "expected nil ed mask when there are no region markers")
	assert.Nil(t, gen, "expected nil gened mask when there are no region markers")
}

func TestExtractMasksParenBlocksOnlyEd(t *testing.T) {
	stripped, ed, gen := ExtractMasks("a(b)c")
	require.Equal(t, "abc", stripped)
	// position of 'b' is index 2 (1-indexed: a=1, b=2, c=3)
	assert.Equal(t, Block, ed[2], "expected ed_mask[2] (position of 'b') == Block")
	for i, v := range gen {
		assert.Zerof(t, v, "expected gened_mask all zero for a plain (...) region, got gen[%d]=%v", i, v)
	}
}

func TestExtractMasksAngleBlocksBoth(t *testing.T) {
	stripped, ed, gen := ExtractMasks("a<b>c")
	require.Equal(t, "abc", stripped)
	assert.Equal(t, Block, ed[2], "expected ed_mask[2] == Block for <...>")
	assert.Equal(t, Block, gen[2], "expected gened_mask[2] == Block for <...>")
}

func TestExtractMasksDoubledStartMarker(t *testing.T) {
	// "((word" - a doubled opening paren at the very start blocks
	// insertion before position 0 instead of opening a nested region.
	stripped, ed, _ := ExtractMasks("((word")
	require.Equal(t, "word", stripped)
	assert.Equal(t, Block, ed[0], "expected ed_mask[0] (insertion before position 0) == Block")
}

func TestExtractMasksDoubledEndMarker(t *testing.T) {
	stripped, ed, _ := ExtractMasks("word))")
	require.Equal(t, "word", stripped)
	assert.Equal(t, Block, ed[len(ed)-1], "expected ed_mask[last] (insertion after last position) == Block")
}

func TestExtractMasksAllMarkers(t *testing.T) {
	// pathological: the whole string is markers, trueLen == 0.
	stripped, ed, gen := ExtractMasks("(<>)")
	assert.Equal(t, "(<>)", stripped, "expected unchanged string when trueLen==0")
	assert.Nil(t, ed)
	assert.Nil(t, gen)
}

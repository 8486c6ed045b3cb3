package monitor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func lines(ll ...string) string {
	if len(ll) == 0 {
		return ""
	}
	return strings.Join(ll, "\n") + "\n"
}

func TestTailBootstrap(t *testing.T) {
	var tl Tail
	assert.False(t, tl.Primed())

	got, found := tl.Next(lines("a", "b", "c", "d"))
	assert.True(t, found)
	assert.Empty(t, got)
	assert.True(t, tl.Primed())
	assert.Equal(t, lines("c", "d"), tl.anchor)
}

func TestTailBootstrapOddLineCount(t *testing.T) {
	var tl Tail
	tl.Next(lines("a", "b", "c"))
	assert.Equal(t, lines("b", "c"), tl.anchor)
}

func TestTailAppend(t *testing.T) {
	var tl Tail
	d1 := lines("a", "b", "c", "d")
	tl.Next(d1)

	got, found := tl.Next(d1 + lines("e", "f"))
	assert.True(t, found)
	assert.Equal(t, []string{"e", "f"}, got)

	got, found = tl.Next(d1 + lines("e", "f", "g"))
	assert.True(t, found)
	assert.Equal(t, []string{"g"}, got)
}

func TestTailNoChange(t *testing.T) {
	var tl Tail
	d := lines("a", "b", "c", "d")
	tl.Next(d)

	got, found := tl.Next(d)
	assert.True(t, found)
	assert.Empty(t, got)
}

func TestTailWrappedBuffer(t *testing.T) {
	var tl Tail
	tl.Next(lines("a", "b", "c", "d"))

	// oldest record evicted, anchor c,d still present
	got, found := tl.Next(lines("b", "c", "d", "e"))
	assert.True(t, found)
	assert.Equal(t, []string{"e"}, got)
}

func TestTailAnchorMiss(t *testing.T) {
	var tl Tail
	tl.Next(lines("a", "b", "c", "d"))

	got, found := tl.Next(lines("x", "y"))
	assert.False(t, found)
	assert.Equal(t, []string{"x", "y"}, got)

	// the new dump becomes the reference
	got, found = tl.Next(lines("x", "y", "z"))
	assert.True(t, found)
	assert.Equal(t, []string{"z"}, got)
}

func TestTailLineAligned(t *testing.T) {
	var tl Tail
	tl.Next(lines("5,false,00", "1,true,00"))

	got, found := tl.Next(lines("11,true,00", "1,true,00", "2,true,01"))
	assert.True(t, found)
	assert.Equal(t, []string{"2,true,01"}, got)
}

func TestTailEmptyBaseline(t *testing.T) {
	var tl Tail
	got, _ := tl.Next("")
	assert.Empty(t, got)

	got, found := tl.Next(lines("a", "b"))
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestTailPrime(t *testing.T) {
	var tl Tail
	tl.Prime()

	got, found := tl.Next(lines("a", "b"))
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestTailMissingTrailingNewline(t *testing.T) {
	var tl Tail
	tl.Next("a\nb\nc\nd")

	got, found := tl.Next("a\nb\nc\nd\ne")
	assert.True(t, found)
	assert.Equal(t, []string{"e"}, got)
}

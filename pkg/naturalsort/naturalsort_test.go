package naturalsort

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareNumericRuns(t *testing.T) {
	// numbers compare by value, not character by character
	assert.Negative(t, Compare("Lesson 2.mp4", "Lesson 10.mp4"))
	assert.Positive(t, Compare("Lesson 10.mp4", "Lesson 2.mp4"))
	assert.Negative(t, Compare("Lesson 1.mp4", "Lesson 2.mp4"))
	assert.Zero(t, Compare("Lesson 2.mp4", "Lesson 2.mp4"))
}

func TestCompareLiteralSegments(t *testing.T) {
	assert.Negative(t, Compare("Intro.mp4", "Outro.mp4"))
	// literal comparison ignores case
	assert.Zero(t, Compare("INTRO.mp4", "intro.mp4"))
	assert.Negative(t, Compare("apple", "Banana"))
}

func TestCompareLeadingZeros(t *testing.T) {
	// zero-padded and unpadded numbering interleave correctly
	assert.Zero(t, Compare("007", "7"))
	assert.Negative(t, Compare("02 - setup.mp4", "10 - deploy.mp4"))
	assert.Negative(t, Compare("clip 0009", "clip 10"))
}

func TestComparePrefix(t *testing.T) {
	// a bare prefix sorts before any extension of it
	assert.Negative(t, Compare("intro", "intro part 2"))
	assert.Positive(t, Compare("intro part 2", "intro"))
}

func TestCompareMixedSegments(t *testing.T) {
	// alternating digit and literal runs are walked pairwise
	assert.Negative(t, Compare("s1e2", "s1e10"))
	assert.Negative(t, Compare("s1e10", "s2e1"))
}

func TestLessSortsNames(t *testing.T) {
	names := []string{"Lesson 10.mp4", "Lesson 1.mp4", "Intro.mp4", "Lesson 2.mp4", "Outro.mp4"}

	sort.Slice(names, func(i, j int) bool { return Less(names[i], names[j]) })

	assert.Equal(t, []string{"Intro.mp4", "Lesson 1.mp4", "Lesson 2.mp4", "Lesson 10.mp4", "Outro.mp4"}, names)
}

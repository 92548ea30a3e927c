package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// scoreTolerance absorbs rounding both scores to three decimals.
const scoreTolerance = 0.0015

// AssertErrorContains checks that err is non-nil and mentions expected.
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), expected)
	}
}

// AssertProbability checks that v lies in [0,1].
func AssertProbability(t *testing.T, v float64, msgAndArgs ...any) {
	t.Helper()
	assert.GreaterOrEqual(t, v, 0.0, msgAndArgs...)
	assert.LessOrEqual(t, v, 1.0, msgAndArgs...)
}

// AssertComplementary checks that reliability and no-show risk are both
// probabilities summing to one.
func AssertComplementary(t *testing.T, reliability, noShowRisk float64) {
	t.Helper()
	AssertProbability(t, reliability, "reliability")
	AssertProbability(t, noShowRisk, "no-show risk")
	assert.LessOrEqual(t, math.Abs(reliability+noShowRisk-1), scoreTolerance,
		"reliability %.3f and risk %.3f must sum to 1", reliability, noShowRisk)
}

// AssertThreeDecimals checks that v carries no more than three decimals.
func AssertThreeDecimals(t *testing.T, v float64) {
	t.Helper()
	assert.InDelta(t, math.Round(v*1000)/1000, v, 1e-9, "%v has more than three decimals", v)
}

package vnd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromFloat(t *testing.T) {
	assert.Equal(t, int64(100000), FromFloat(100000).Amount())
	assert.Equal(t, int64(100001), FromFloat(100000.6).Amount(), "rounds to whole dong")
	assert.Equal(t, int64(-150000), FromFloat(-150000).Amount())
	assert.Equal(t, int64(0), Zero().Amount())
}

func TestAdd(t *testing.T) {
	total := FromFloat(100000).Add(FromFloat(250000))
	assert.Equal(t, int64(350000), total.Amount())
}

func TestSum(t *testing.T) {
	assert.Equal(t, int64(600000), Sum([]float64{100000, 200000, 300000}).Amount())
	assert.Equal(t, int64(0), Sum(nil).Amount())
}

func TestDisplay(t *testing.T) {
	display := FromFloat(1500000).Display()
	assert.NotEmpty(t, display)
	// Grouping separators are locale-dependent; the digits must survive.
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, display)
	assert.Equal(t, "1500000", digits)
}

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeSuffix(t *testing.T) {
	cases := map[string]string{
		"type.googleapis.com/examples.PlayerRegistered": "PlayerRegistered",
		"examples.OrderPlaced":                          "OrderPlaced",
		"NoDotAtAll":                                     "NoDotAtAll",
		"":                                               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, TypeSuffix(in), "input %q", in)
	}
}

func TestMatches(t *testing.T) {
	suffixes := []string{"PlayerRegistered", "HandFolded"}

	assert.True(t, Matches("type.googleapis.com/examples.PlayerRegistered", suffixes))
	assert.True(t, Matches("type.googleapis.com/examples.HandFolded", suffixes))
	assert.False(t, Matches("type.googleapis.com/examples.OrderShipped", suffixes))
	assert.False(t, Matches("anything", nil))
}

func TestCompensationKey(t *testing.T) {
	a := CompensationKey("payments", "ChargeCard")
	b := CompensationKey("payments", "ChargeCard")
	c := CompensationKey("payments", "RefundCard")
	d := CompensationKey("orders", "ChargeCard")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	assert.Contains(t, a, "\x00")
}

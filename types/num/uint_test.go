package num_test

import (
	"testing"

	"code.wagernet.io/wager/types/num"

	"github.com/stretchr/testify/assert"
)

func TestUint(t *testing.T) {
	t.Run("Clone is independent of the original", testUintClone)
	t.Run("Sum adds all values", testUintSum)
	t.Run("Comparison predicates", testUintCompare)
	t.Run("Parse from string", testUintFromString)
}

func testUintClone(t *testing.T) {
	x := num.NewUint(42)
	y := x.Clone()
	y.AddSum(num.NewUint(1))
	assert.Equal(t, uint64(42), x.Uint64())
	assert.Equal(t, uint64(43), y.Uint64())
}

func testUintSum(t *testing.T) {
	got := num.Sum(num.NewUint(1), num.NewUint(2), num.NewUint(3))
	assert.True(t, got.EQ(num.NewUint(6)))
	assert.True(t, num.UintZero().IsZero())
}

func testUintCompare(t *testing.T) {
	small, big := num.NewUint(5), num.NewUint(10)
	assert.True(t, small.LT(big))
	assert.True(t, small.LTE(big))
	assert.True(t, big.GT(small))
	assert.True(t, big.GTE(big))
	assert.True(t, big.NEQ(small))
	assert.True(t, big.EQ(num.NewUint(10)))
}

func testUintFromString(t *testing.T) {
	v, overflow := num.UintFromString("12345678901234567890")
	assert.False(t, overflow)
	assert.Equal(t, "12345678901234567890", v.String())

	_, overflow = num.UintFromString("not a number")
	assert.True(t, overflow)

	_, overflow = num.UintFromString("-1")
	assert.True(t, overflow)
}

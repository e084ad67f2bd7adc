package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeaveBalance_Percentages(t *testing.T) {
	lb := LeaveBalance{PreviousYearBalance: 3, CurrentYearAllocated: 21, CurrentYearTaken: 7}

	assert.Equal(t, 14.0, lb.CurrentYearBalance())

	taken, ok := lb.PercentTaken()
	assert.True(t, ok)
	assert.Equal(t, 33, taken)

	balance, ok := lb.PercentBalance()
	assert.True(t, ok)
	assert.Equal(t, 67, balance)
}

func TestLeaveBalance_ZeroAllocationIsUndefined(t *testing.T) {
	lb := LeaveBalance{CurrentYearAllocated: 0, CurrentYearTaken: 4}

	assert.NotPanics(t, func() {
		taken, ok := lb.PercentTaken()
		assert.False(t, ok)
		assert.Equal(t, 0, taken)

		balance, ok := lb.PercentBalance()
		assert.False(t, ok)
		assert.Equal(t, 0, balance)
	})
	assert.Equal(t, -4.0, lb.CurrentYearBalance())
}

func TestLeaveBalance_RoundsHalfAwayFromZero(t *testing.T) {
	lb := LeaveBalance{CurrentYearAllocated: 8, CurrentYearTaken: 1}
	taken, _ := lb.PercentTaken()
	assert.Equal(t, 13, taken) // 12.5
}

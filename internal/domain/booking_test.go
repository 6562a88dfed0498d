package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingCancelled, true},
		{BookingPending, BookingRejected, true},
		{BookingConfirmed, BookingCancelled, true},
		{BookingConfirmed, BookingRejected, false},
		{BookingConfirmed, BookingPending, false},
		{BookingCancelled, BookingConfirmed, false},
		{BookingRejected, BookingPending, false},
		{BookingPending, BookingPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}

	assert.True(t, BookingCancelled.IsTerminal())
	assert.True(t, BookingRejected.IsTerminal())
	assert.False(t, BookingConfirmed.IsTerminal())
	assert.True(t, BookingPending.IsActive())
	assert.False(t, BookingCancelled.IsActive())
	assert.False(t, BookingStatus("archived").Valid())
	assert.Equal(t, []BookingStatus{BookingPending, BookingConfirmed}, ActiveStatuses)
}

func TestNormalizeDuration(t *testing.T) {
	assert.Equal(t, DurationDay, NormalizeDuration(""))
	assert.Equal(t, DurationDay, NormalizeDuration("hour"))
	assert.Equal(t, DurationWeek, NormalizeDuration(" Week "))
	assert.Equal(t, DurationMonth, NormalizeDuration("MONTH"))
}

func TestBookingUpdateEmpty(t *testing.T) {
	assert.True(t, BookingUpdate{}.Empty())
	notes := ""
	assert.False(t, BookingUpdate{Notes: &notes}.Empty())
}

func TestUserDisplayName(t *testing.T) {
	last := "Kebede"
	assert.Equal(t, "Abebe Kebede", (&User{FirstName: "Abebe", LastName: &last}).DisplayName())
	assert.Equal(t, "a@b.c", (&User{Email: "a@b.c"}).DisplayName())

	first, rest := SplitName("  Abebe   Kebede Tesfaye ", "a@b.c")
	assert.Equal(t, "Abebe", first)
	assert.Equal(t, "Kebede Tesfaye", *rest)

	first, rest = SplitName("", "a@b.c")
	assert.Equal(t, "a@b.c", first)
	assert.Nil(t, rest)
}

func TestWorkspaceInventory(t *testing.T) {
	assert.Equal(t, 1, (&Workspace{}).Inventory())
	assert.Equal(t, 1, (&Workspace{InventoryCount: -3}).Inventory())
	assert.Equal(t, 4, (&Workspace{InventoryCount: 4}).Inventory())
}

package pooling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sumBefore(members []Member) float64 {
	var total float64
	for _, m := range members {
		total += m.CBBefore
	}
	return total
}

func sumAfter(members []Member) float64 {
	var total float64
	for _, m := range members {
		total += m.CBAfter
	}
	return total
}

func findMember(t *testing.T, members []Member, shipID string) Member {
	t.Helper()
	for _, m := range members {
		if m.ShipID == shipID {
			return m
		}
	}
	t.Fatalf("member %s not found", shipID)
	return Member{}
}

func TestAllocateSurplusCoversDeficits(t *testing.T) {
	members := []Member{
		{ShipID: "A", CBBefore: 100},
		{ShipID: "B", CBBefore: -40},
		{ShipID: "C", CBBefore: -30},
	}

	out := Allocate(members)
	require.Len(t, out, 3)

	assert.InDelta(t, 30, findMember(t, out, "A").CBAfter, 1e-9)
	assert.InDelta(t, 0, findMember(t, out, "B").CBAfter, 1e-9)
	assert.InDelta(t, 0, findMember(t, out, "C").CBAfter, 1e-9)

	result := Validate(out)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestAllocateExactOffset(t *testing.T) {
	out := Allocate([]Member{
		{ShipID: "A", CBBefore: 50},
		{ShipID: "B", CBBefore: -50},
	})

	assert.InDelta(t, 0, findMember(t, out, "A").CBAfter, 1e-9)
	assert.InDelta(t, 0, findMember(t, out, "B").CBAfter, 1e-9)

	result := Validate(out)
	assert.True(t, result.Valid)
}

func TestAllocateConservesTotalBalance(t *testing.T) {
	cases := [][]Member{
		{{ShipID: "A", CBBefore: 100}, {ShipID: "B", CBBefore: -40}, {ShipID: "C", CBBefore: -30}},
		{{ShipID: "A", CBBefore: 10}, {ShipID: "B", CBBefore: -40}},
		{{ShipID: "A", CBBefore: 25.5}, {ShipID: "B", CBBefore: 12.25}, {ShipID: "C", CBBefore: -8.75}, {ShipID: "D", CBBefore: -60}},
		{{ShipID: "A", CBBefore: 0}, {ShipID: "B", CBBefore: 0}},
		{{ShipID: "solo", CBBefore: -15}},
		{},
	}

	for _, members := range cases {
		out := Allocate(members)
		require.Len(t, out, len(members))
		assert.InDelta(t, sumBefore(members), sumAfter(out), 1e-9)
	}
}

func TestAllocateNeverOvershootsZero(t *testing.T) {
	// With total surplus covering total deficit, no surplus member may
	// end negative and no deficit member may end positive.
	out := Allocate([]Member{
		{ShipID: "A", CBBefore: 70},
		{ShipID: "B", CBBefore: 30},
		{ShipID: "C", CBBefore: -20},
		{ShipID: "D", CBBefore: -45},
	})

	for _, m := range out {
		if m.CBBefore > 0 {
			assert.GreaterOrEqual(t, m.CBAfter, 0.0, "surplus member %s", m.ShipID)
		}
		if m.CBBefore < 0 {
			assert.LessOrEqual(t, m.CBAfter, 0.0, "deficit member %s", m.ShipID)
		}
	}
}

func TestAllocateInsufficientSurplusLeavesResidualDeficit(t *testing.T) {
	out := Allocate([]Member{
		{ShipID: "A", CBBefore: 10},
		{ShipID: "B", CBBefore: -40},
	})

	assert.InDelta(t, 0, findMember(t, out, "A").CBAfter, 1e-9)
	assert.InDelta(t, -30, findMember(t, out, "B").CBAfter, 1e-9)
}

func TestAllocateDoesNotMutateInput(t *testing.T) {
	members := []Member{
		{ShipID: "A", CBBefore: 100},
		{ShipID: "B", CBBefore: -40},
	}

	Allocate(members)

	assert.Equal(t, 0.0, members[0].CBAfter)
	assert.Equal(t, 0.0, members[1].CBAfter)
	assert.Equal(t, "A", members[0].ShipID)
}

func TestAllocateTieBreakIsDeterministic(t *testing.T) {
	first := Allocate([]Member{
		{ShipID: "B", CBBefore: 40},
		{ShipID: "A", CBBefore: 40},
		{ShipID: "C", CBBefore: -60},
	})
	second := Allocate([]Member{
		{ShipID: "A", CBBefore: 40},
		{ShipID: "C", CBBefore: -60},
		{ShipID: "B", CBBefore: 40},
	})

	assert.Equal(t, first, second)
	// Equal balances are ordered by ship ID, so A gives first.
	assert.Equal(t, "A", first[0].ShipID)
	assert.InDelta(t, 0, first[0].CBAfter, 1e-9)
	assert.InDelta(t, 20, findMember(t, first, "B").CBAfter, 1e-9)
}

func TestValidateAggregateDeficit(t *testing.T) {
	members := Allocate([]Member{
		{ShipID: "A", CBBefore: 10},
		{ShipID: "B", CBBefore: -40},
	})

	result := Validate(members)
	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "sum of compliance balances")
}

func TestValidateDeficitMemberMadeWorseOff(t *testing.T) {
	result := Validate([]Member{
		{ShipID: "A", CBBefore: 50, CBAfter: 60},
		{ShipID: "B", CBBefore: -10, CBAfter: -20},
	})

	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "ship B")
	assert.Contains(t, result.Errors[0], "worse off")
}

func TestValidateSurplusMemberPushedNegative(t *testing.T) {
	result := Validate([]Member{
		{ShipID: "A", CBBefore: 30, CBAfter: -5},
		{ShipID: "B", CBBefore: -10, CBAfter: 25},
	})

	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "ship A")
}

func TestValidateReportsAllViolationsIndependently(t *testing.T) {
	result := Validate([]Member{
		{ShipID: "A", CBBefore: 10, CBAfter: -5},
		{ShipID: "B", CBBefore: -40, CBAfter: -55},
	})

	require.False(t, result.Valid)
	// Aggregate deficit, surplus member pushed negative, deficit
	// member made worse off: three distinct violations.
	assert.Len(t, result.Errors, 3)
}

func TestValidateEmptyPool(t *testing.T) {
	result := Validate(nil)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

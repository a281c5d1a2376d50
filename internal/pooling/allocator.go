package pooling

import (
	"fmt"
	"sort"
)

// Member is a single ship's position in a pool allocation. CBBefore is
// the authoritative compliance balance entering the pool; CBAfter is
// the balance after redistribution.
type Member struct {
	ShipID   string  `json:"ship_id"`
	CBBefore float64 `json:"cb_before"`
	CBAfter  float64 `json:"cb_after"`
}

// ValidationResult reports the outcome of the pool invariant checks.
// Validation failure is a normal return value, not an error: the
// caller rejects pool creation and surfaces the violation strings.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Allocate redistributes compliance balances across pool members so
// that surplus covers deficit, using a greedy two-pointer sweep over
// the members sorted by descending balance. The input slice is not
// modified. Total balance is conserved: the sum of CBAfter equals the
// sum of CBBefore.
//
// Ties on CBBefore are broken by ascending ShipID so the allocation is
// reproducible for audit.
func Allocate(members []Member) []Member {
	out := make([]Member, len(members))
	copy(out, members)

	sort.Slice(out, func(i, j int) bool {
		if out[i].CBBefore != out[j].CBBefore {
			return out[i].CBBefore > out[j].CBBefore
		}
		return out[i].ShipID < out[j].ShipID
	})

	for i := range out {
		out[i].CBAfter = out[i].CBBefore
	}

	surplus := 0
	deficit := len(out) - 1
	for surplus < deficit {
		if out[surplus].CBAfter <= 0 {
			surplus++
			continue
		}
		if out[deficit].CBAfter >= 0 {
			deficit--
			continue
		}

		transfer := out[surplus].CBAfter
		if need := -out[deficit].CBAfter; need < transfer {
			transfer = need
		}
		out[surplus].CBAfter -= transfer
		out[deficit].CBAfter += transfer

		if out[surplus].CBAfter <= 0 {
			surplus++
		}
		if out[deficit].CBAfter >= 0 {
			deficit--
		}
	}

	return out
}

// Validate checks the three regulatory invariants on an allocated pool.
// Each violation appends a distinct message; the checks are evaluated
// independently rather than short-circuited.
func Validate(members []Member) ValidationResult {
	var errs []string

	var total float64
	for _, m := range members {
		total += m.CBBefore
	}
	if total < 0 {
		errs = append(errs, fmt.Sprintf("sum of compliance balances is negative (%.2f gCO2eq): the pool is in aggregate deficit and cannot be formed", total))
	}

	for _, m := range members {
		if m.CBBefore < 0 && m.CBAfter < m.CBBefore {
			errs = append(errs, fmt.Sprintf("ship %s entered in deficit and must not leave worse off (before %.2f, after %.2f)", m.ShipID, m.CBBefore, m.CBAfter))
		}
		if m.CBBefore > 0 && m.CBAfter < 0 {
			errs = append(errs, fmt.Sprintf("ship %s entered in surplus and must not leave in deficit (before %.2f, after %.2f)", m.ShipID, m.CBBefore, m.CBAfter))
		}
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

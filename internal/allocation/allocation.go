// Package allocation implements the fare split engine. Given a total amount and
// an ordered list of participant shares (a fixed amount or a proportional
// weight), it produces integer charges that always sum to the total.
//
// The engine is pure: no I/O, no shared state, deterministic for identical
// inputs including which participants absorb the rounding remainder.
package allocation

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Share is one participant's resolved allocation input. Fixed shares pay
// exactly FixedAmount; everyone else splits the rest in proportion to Weight.
// The caller resolves role multipliers into Weight first; the engine never
// consults the role registry itself.
type Share struct {
	Fixed       bool
	FixedAmount int64
	Weight      float64
}

// OverAllocatedError is returned when the fixed amounts alone exceed the total.
// The engine never clamps charges to hide this.
type OverAllocatedError struct {
	FixedTotal int64
	Total      int64
}

func (e *OverAllocatedError) Error() string {
	return fmt.Sprintf("fixed amounts (%d) exceed total (%d)", e.FixedTotal, e.Total)
}

// UnallocatedError is returned when a non-zero remainder cannot be distributed
// because every proportional weight is zero (or no proportional participants
// exist). Charges are still returned alongside this error, with zero for each
// proportional participant; Remainder is the amount left uncovered.
type UnallocatedError struct {
	Remainder int64
}

func (e *UnallocatedError) Error() string {
	return fmt.Sprintf("remainder of %d could not be allocated: no positive weights", e.Remainder)
}

// Allocate splits total across shares and returns one charge per share, in
// input order.
//
// Fixed shares are charged their fixed amount and subtracted from the total
// first. The remainder is split across proportional shares by weight: each raw
// share is floored and the leftover units are handed out one at a time to the
// largest fractional remainders, ties going to the earliest-listed participant.
// The returned charges always sum to total unless an error is returned; on
// UnallocatedError the charges cover total minus the reported remainder.
func Allocate(total int64, shares []Share) ([]int64, error) {
	charges := make([]int64, len(shares))

	var fixedTotal int64
	proportional := make([]int, 0, len(shares))
	for i, s := range shares {
		if s.Fixed {
			charges[i] = s.FixedAmount
			fixedTotal += s.FixedAmount
		} else {
			proportional = append(proportional, i)
		}
	}

	remaining := total - fixedTotal
	if remaining < 0 {
		return nil, &OverAllocatedError{FixedTotal: fixedTotal, Total: total}
	}

	if len(proportional) == 0 {
		if remaining > 0 {
			return charges, &UnallocatedError{Remainder: remaining}
		}
		return charges, nil
	}

	weightSum := decimal.Zero
	weights := make(map[int]decimal.Decimal, len(proportional))
	for _, i := range proportional {
		w := decimal.NewFromFloat(shares[i].Weight)
		weights[i] = w
		weightSum = weightSum.Add(w)
	}

	if weightSum.IsZero() {
		// Every proportional participant gets zero. The remainder is reported,
		// never silently dropped.
		if remaining > 0 {
			return charges, &UnallocatedError{Remainder: remaining}
		}
		return charges, nil
	}

	// Floor each raw share, remembering the fractional part for the second pass.
	type fraction struct {
		index int
		frac  decimal.Decimal
	}
	remainingDec := decimal.NewFromInt(remaining)
	fractions := make([]fraction, 0, len(proportional))

	var distributed int64
	for _, i := range proportional {
		raw := remainingDec.Mul(weights[i]).Div(weightSum)
		floor := raw.Floor()
		charges[i] = floor.IntPart()
		distributed += charges[i]
		fractions = append(fractions, fraction{index: i, frac: raw.Sub(floor)})
	}

	// Flooring n positive raw shares that sum to the remainder leaves between
	// 0 and n-1 units. Anything else means the decimal division drifted and
	// the coverage guarantee would break silently, so refuse to continue.
	leftover := remaining - distributed
	if leftover < 0 || leftover > int64(len(fractions)) {
		return nil, fmt.Errorf("allocation rounding drift: %d leftover units for %d participants", leftover, len(fractions))
	}

	// Hand out the leftover units, largest fractional remainder first.
	// SliceStable keeps input order for ties so reruns are reproducible.
	sort.SliceStable(fractions, func(a, b int) bool {
		return fractions[a].frac.GreaterThan(fractions[b].frac)
	})
	for u := int64(0); u < leftover; u++ {
		charges[fractions[u].index]++
	}

	return charges, nil
}

// AllocateItems runs Allocate against an itemized amount list. The sum of item
// amounts is the authoritative total regardless of any separately stored total;
// it is returned so callers can surface it. Items are not attributed to
// individual participants.
func AllocateItems(itemAmounts []int64, shares []Share) ([]int64, int64, error) {
	var total int64
	for _, a := range itemAmounts {
		total += a
	}
	charges, err := Allocate(total, shares)
	return charges, total, err
}

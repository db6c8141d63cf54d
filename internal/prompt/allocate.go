package prompt

import "github.com/hyperifyio/godraft/internal/budget"

const (
	// StructureReserveTokens is set aside for the prompt scaffolding: the
	// opening instruction, section headers, and closing directive.
	StructureReserveTokens = 500
	// BriefTokenCap bounds the brief's allocation. The brief is the highest
	// priority section and is never truncated by pool budgeting, but its
	// claim on the budget is capped so reference material keeps some room.
	BriefTokenCap = 1500
	// DefaultCeiling is the total prompt budget used when the caller does not
	// derive one from the model's context window.
	DefaultCeiling = 8000
)

// Budget is the per-request division of the token ceiling. Computed fresh for
// every request and never stored.
type Budget struct {
	Ceiling          int
	StructureReserve int
	BriefAllocation  int
	// Remaining is what the reference pools share after the structure reserve
	// and brief allocation are taken off the ceiling. Never negative.
	Remaining int
	PerPool   map[string]int
}

// Allocate divides ceiling among the brief and the supplied pools. The
// remaining budget is split evenly across exactly the non-empty pools; an
// empty pool always gets 0 and does not count toward the divisor. When the
// division is inexact the leftover goes to the last present pool, so the
// shares always sum to the full remaining budget. A pathologically small
// ceiling clamps remaining at zero and downstream truncation becomes
// maximally aggressive; it is never an error.
func Allocate(brief string, pools []Pool, ceiling int) Budget {
	if ceiling <= 0 {
		ceiling = DefaultCeiling
	}
	b := Budget{
		Ceiling:          ceiling,
		StructureReserve: StructureReserveTokens,
		BriefAllocation:  budget.EstimateTokens(brief),
		PerPool:          make(map[string]int, len(pools)),
	}
	if b.BriefAllocation > BriefTokenCap {
		b.BriefAllocation = BriefTokenCap
	}
	b.Remaining = ceiling - b.StructureReserve - b.BriefAllocation
	if b.Remaining < 0 {
		b.Remaining = 0
	}

	var present []string
	for _, p := range pools {
		if p.Empty() {
			b.PerPool[p.Name] = 0
			continue
		}
		present = append(present, p.Name)
	}
	if len(present) == 0 {
		// Nothing to feed the remaining budget to; it goes unused rather
		// than inflating the brief.
		return b
	}

	share := b.Remaining / len(present)
	for _, name := range present {
		b.PerPool[name] = share
	}
	b.PerPool[present[len(present)-1]] += b.Remaining - share*len(present)
	return b
}

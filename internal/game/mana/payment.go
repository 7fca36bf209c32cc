package mana

// CanAfford reports whether pool can pay cost. Every colored (and colorless)
// requirement must be covered by the matching pool slot; the generic part may be
// covered by whatever is left over afterwards.
func CanAfford(pool *ManaPool, cost ManaCost) bool {
	leftover := 0
	for _, t := range PoolTypes {
		have, need := pool.Get(t), cost.Amount(t)
		if have < need {
			return false
		}
		leftover += have - need
	}
	return leftover >= cost.Generic
}

// Pay subtracts the colored and colorless parts of cost from pool and returns
// the generic part as debt. The generic part is never taken from the pool here;
// the caller records it and settles it with PayDebt.
//
// Pay must only be called after CanAfford returned true. On an unaffordable cost
// the pool is left with negative slots.
func Pay(pool *ManaPool, cost ManaCost) (genericDebt int) {
	for _, t := range PoolTypes {
		pool.subtract(t, cost.Amount(t))
	}
	return cost.Generic
}

// PayDebt settles debt with mana of type t, one unit per unit of debt, as far as
// the pool allows. It returns the debt still outstanding.
func PayDebt(pool *ManaPool, debt int, t ManaType) int {
	if debt <= 0 {
		return 0
	}
	spend := pool.Get(t)
	if spend > debt {
		spend = debt
	}
	if spend <= 0 {
		return debt
	}
	pool.Spend(t, spend)
	return debt - spend
}

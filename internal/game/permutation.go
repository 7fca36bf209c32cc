package game

import "fmt"

// maxOrderedBlockers bounds n so that n! fits in an int.
const maxOrderedBlockers = 20

// DamageAssignmentOrders returns n!, the number of orders in which an
// attacker can assign damage to n blockers.
func DamageAssignmentOrders(n int) int {
	total := 1
	for i := 2; i <= n; i++ {
		total *= i
	}
	return total
}

// NthPermutation returns the index-th lexicographic permutation of 0..n-1,
// decoding index in the factorial number system.
func NthPermutation(n, index int) ([]int, error) {
	if n < 0 || n > maxOrderedBlockers {
		return nil, fmt.Errorf("%w: cannot order %d blockers", ErrInvalidOrderIndex, n)
	}
	if index < 0 || index >= DamageAssignmentOrders(n) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidOrderIndex, index, DamageAssignmentOrders(n))
	}

	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	perm := make([]int, 0, n)
	for k := n; k > 0; k-- {
		block := DamageAssignmentOrders(k - 1)
		pick := index / block
		index %= block
		perm = append(perm, pool[pick])
		pool = append(pool[:pick], pool[pick+1:]...)
	}
	return perm, nil
}

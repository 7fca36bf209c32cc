package mana

// DefaultTaxPerCast is the extra generic mana a commander costs for each
// previous cast from the command zone.
const DefaultTaxPerCast = 2

// CommanderTax returns the additional generic cost after priorCasts casts.
func CommanderTax(priorCasts, perCast int) int {
	if priorCasts <= 0 || perCast <= 0 {
		return 0
	}
	return priorCasts * perCast
}

// WithTax returns cost with extra added to its generic part. Colored
// requirements are unaffected.
func (mc ManaCost) WithTax(extra int) ManaCost {
	if extra > 0 {
		mc.Generic += extra
	}
	return mc
}

package counters

// CounterType names a kind of counter.
type CounterType string

const (
	CounterTypeLoyalty CounterType = "loyalty"
	CounterTypeCharge  CounterType = "charge"
)

// String returns the string representation of the counter type.
func (ct CounterType) String() string {
	return string(ct)
}

package format

// ValueType is the storage representation of a metric's sampled values, as
// declared in its descriptor.
type ValueType int32

const (
	ValueInt32     ValueType = 0
	ValueUInt32    ValueType = 1
	ValueInt64     ValueType = 2
	ValueUInt64    ValueType = 3
	ValueFloat     ValueType = 4
	ValueDouble    ValueType = 5
	ValueString    ValueType = 6
	ValueAggregate ValueType = 7
	ValueEvent     ValueType = 8
	ValueNoSupport ValueType = -1
)

func (v ValueType) String() string {
	switch v {
	case ValueInt32:
		return "Int32"
	case ValueUInt32:
		return "UInt32"
	case ValueInt64:
		return "Int64"
	case ValueUInt64:
		return "UInt64"
	case ValueFloat:
		return "Float"
	case ValueDouble:
		return "Double"
	case ValueString:
		return "String"
	case ValueAggregate:
		return "Aggregate"
	case ValueEvent:
		return "Event"
	case ValueNoSupport:
		return "NoSupport"
	default:
		return "Unknown"
	}
}

// Semantics describes how a metric's successive values relate to one
// another.
type Semantics int32

const (
	// SemCounter values are monotonically non-decreasing between resets.
	SemCounter Semantics = 1
	// SemInstant values are independent point-in-time readings.
	SemInstant Semantics = 3
	// SemDiscrete values are independent readings from an enumerated set.
	SemDiscrete Semantics = 4
)

func (s Semantics) String() string {
	switch s {
	case SemCounter:
		return "Counter"
	case SemInstant:
		return "Instant"
	case SemDiscrete:
		return "Discrete"
	default:
		return "Unknown"
	}
}

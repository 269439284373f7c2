package format

// Unit packs a descriptor's six-field unit (three dimensions, three
// signed scale exponents) into a single 32-bit value, the way the wire
// format carries it. Each field is a signed 5-bit quantity (range -16..15)
// stored in its own bit span; Pack/Unpack convert between the struct form
// used by callers and the packed form used on disk and in equality checks.
type Unit struct {
	// DimSpace, DimTime, DimCount are the unit's three dimension exponents
	// (e.g. DimSpace=1 for a byte-valued metric).
	DimSpace int8
	DimTime  int8
	DimCount int8

	// ScaleSpace, ScaleTime, ScaleCount are the three scale exponents paired
	// with the dimensions above (e.g. ScaleSpace selects byte vs. kibibyte).
	ScaleSpace int8
	ScaleTime  int8
	ScaleCount int8
}

// Bit layout of the packed 32-bit form. Each field occupies 5 bits, giving
// a 6*5=30 bit packed value with 2 bits unused.
const (
	unitFieldBits = 5
	unitFieldMask = 0x1F // 5 bits
	unitSignBit   = 0x10 // bit 4, the sign bit within a 5-bit field

	dimSpaceShift   = 0
	dimTimeShift    = 5
	dimCountShift   = 10
	scaleSpaceShift = 15
	scaleTimeShift  = 20
	scaleCountShift = 25
)

// Pack encodes u into its wire representation.
func (u Unit) Pack() uint32 {
	var packed uint32
	packed |= pack5(u.DimSpace) << dimSpaceShift
	packed |= pack5(u.DimTime) << dimTimeShift
	packed |= pack5(u.DimCount) << dimCountShift
	packed |= pack5(u.ScaleSpace) << scaleSpaceShift
	packed |= pack5(u.ScaleTime) << scaleTimeShift
	packed |= pack5(u.ScaleCount) << scaleCountShift

	return packed
}

// UnpackUnit decodes a wire-format 32-bit value into a Unit.
func UnpackUnit(packed uint32) Unit {
	return Unit{
		DimSpace:   unpack5(packed >> dimSpaceShift),
		DimTime:    unpack5(packed >> dimTimeShift),
		DimCount:   unpack5(packed >> dimCountShift),
		ScaleSpace: unpack5(packed >> scaleSpaceShift),
		ScaleTime:  unpack5(packed >> scaleTimeShift),
		ScaleCount: unpack5(packed >> scaleCountShift),
	}
}

func pack5(v int8) uint32 {
	return uint32(v) & unitFieldMask
}

func unpack5(field uint32) int8 {
	v := field & unitFieldMask
	if v&unitSignBit != 0 {
		// Sign-extend the 5-bit field into a full int8.
		return int8(v) - (unitFieldMask + 1)
	}

	return int8(v)
}

// Equal reports whether u and other carry identical dimension and scale
// values; this is the comparison a descriptor conflict check runs field by
// field to classify a unit mismatch as CONFLICT_UNITS.
func (u Unit) Equal(other Unit) bool {
	return u == other
}

// DiffersOnlyInScaleSpace reports whether u and other agree on every field
// except ScaleSpace, a mismatch that still produces CONFLICT_UNITS rather
// than being tolerated.
func (u Unit) DiffersOnlyInScaleSpace(other Unit) bool {
	if u.ScaleSpace == other.ScaleSpace {
		return false
	}

	return u.DimSpace == other.DimSpace &&
		u.DimTime == other.DimTime &&
		u.DimCount == other.DimCount &&
		u.ScaleTime == other.ScaleTime &&
		u.ScaleCount == other.ScaleCount
}

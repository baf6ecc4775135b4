// Package field implements arithmetic over Z/pZ for the fixed prime p used
// by the rest of the protocol. Values are canonical residues in [0, p).
package field

// Modulus is the prime defining the field. It is a package variable rather
// than a constant so a binary can redefine it at process boot before any
// protocol runs (cmd/party sets it from config.Party.FieldModulus); it starts
// at the design default of 2003. It must be positive: there is no fallback
// for zero.
var Modulus int64 = 2003

// Element is a residue in [0, Modulus).
type Element int64

// New reduces an arbitrary integer (including negatives, including values
// >= Modulus) into its canonical representative.
func New(v int64) Element {
	m := Modulus
	v %= m
	if v < 0 {
		v += m
	}
	return Element(v)
}

// Add returns (a+b) mod p.
func Add(a, b Element) Element {
	return New(int64(a) + int64(b))
}

// Sub returns (a-b) mod p, normalised into [0, p).
func Sub(a, b Element) Element {
	return New(int64(a) - int64(b))
}

// Mul returns (a*b) mod p. The multiplication is carried out in int64,
// which does not overflow for any p this design supports (p is expected to
// stay well under 2^31).
func Mul(a, b Element) Element {
	return New(int64(a) * int64(b))
}

// Neg returns (-a) mod p.
func Neg(a Element) Element {
	return New(-int64(a))
}

// Int64 exposes the canonical residue as a plain integer, e.g. for wire
// serialisation.
func (e Element) Int64() int64 {
	return int64(e)
}

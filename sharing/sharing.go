// Package sharing implements the additive N-out-of-N secret sharing scheme
// over Z/pZ used throughout the protocol. It plays the same role in
// this repository that Shamir polynomial splitting played in the teacher
// code this package was adapted from: given a secret, produce N shares such
// that all N (not some threshold k<N) are required to reconstruct it.
//
// The teacher's GF(2^8) log/exp tables and Lagrange interpolation do not
// carry over: that scheme is a k-of-n threshold split over a binary field,
// this one is an N-of-N additive split over a prime field. What survives is
// the shape of the API (Split, with Reconstruct in the place of Combine) and
// its defensive argument checking.
package sharing

import (
	"fmt"

	"github.com/aquarelle-tech/smc/field"
	"github.com/aquarelle-tech/smc/share"
)

// Split generates n additive Shares of secret. The first n-1 shares are
// drawn uniformly at random from [0, Modulus); the n-th is chosen so that
// the sum of all n shares equals secret mod p. Shares are never
// re-randomised after this point.
func Split(secret field.Element, n int, rnd Randomizer) ([]share.Share, error) {
	if n < 1 {
		return nil, fmt.Errorf("sharing: n must be at least 1, got %d", n)
	}

	shares := make([]share.Share, n)
	var sum int64
	for i := 0; i < n-1; i++ {
		r := rnd.Int63n(field.Modulus)
		shares[i] = share.NewShare(field.New(r))
		sum += int64(shares[i].Value)
	}
	shares[n-1] = share.NewShare(field.Sub(secret, field.New(sum)))

	return shares, nil
}

// Reconstruct sums a set of Shares mod p. It is used both to
// recombine a secret from its N shares and to recombine the masked Beaver
// values d = x-a and e = y-b during multiplication.
func Reconstruct(shares []share.Share) field.Element {
	var sum field.Element
	for _, s := range shares {
		sum = field.Add(sum, s.Value)
	}
	return sum
}

// Randomizer abstracts the source of randomness Split draws from, so tests
// can supply a deterministic sequence instead of crypto/rand.
type Randomizer interface {
	Int63n(n int64) int64
}

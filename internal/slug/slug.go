// Package slug generates the short random identifiers used for gyms
// and routes.
package slug

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// Ambiguous characters (i, l, o) are left out of the alphabet.
const alphabet = "1234567890abcdefghjkmnpqrstuvwxyz"

// Length of every generated slug.
const Length = 5

// Collisions are retried; a near-full keyspace turns the retry loop
// into an availability problem, so attempts are capped.
const maxAttempts = 100

// ErrSpaceExhausted is returned when no collision-free slug was found
// within the attempt cap.
var ErrSpaceExhausted = errors.New("slug: no unique slug found within attempt cap")

// ExistsFunc reports whether a candidate slug is already taken.
type ExistsFunc func(candidate string) (bool, error)

// New generates a random slug that the exists check does not know,
// retrying on collision up to the attempt cap.
func New(exists ExistsFunc) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate, err := random()
		if err != nil {
			return "", err
		}
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrSpaceExhausted
}

func random() (string, error) {
	buf := make([]byte, Length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf), nil
}

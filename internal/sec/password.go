package sec

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong is returned by [HashPassword] for passwords over 72 bytes.
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// ComparePassword returns an error if the provided password does not resolve to
// the given hash.
func ComparePassword[T ~string | ~[]byte](password T, hash []byte) error {
	return bcrypt.CompareHashAndPassword(hash, []byte(password))
}

// HashPassword generates the salted hash for a given password. It errors if
// the password is longer than 72 bytes.
func HashPassword[T ~string | ~[]byte](password T) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// dummyHash is compared against when no user matches the presented email, so
// unknown and known accounts take the same time to reject.
var dummyHash = sync.OnceValue(func() []byte {
	hash, err := HashPassword("not-a-real-password")
	if err != nil {
		panic(err)
	}
	return hash
})

package storage

import (
	"crypto/rand"
	"math/big"
)

// SecureToken generates a unique random token used in upload filenames.
func SecureToken(length int) string {
	const base58 = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

	pass := make([]byte, length)
	max := big.NewInt(int64(len(base58)))

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err) // should never occur because max >= 0
		}
		pass[i] = base58[int(n.Int64())]
	}

	return string(pass)
}

package bundle

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/md4"
)

const cabPrefix = "CAB-"

// BundleName returns the file name the runtime expects for the jacket of the
// given song.
func BundleName(songID int) string {
	return fmt.Sprintf("jacket_%04d.unity3d", songID)
}

// CABName returns the name of the asset file embedded in the bundle for the
// given song. It is the MD4 hash of the bundle file name in lowercase hex
// prefixed with "CAB-".
func CABName(songID int) string {
	h := md4.New()
	h.Write([]byte(BundleName(songID)))
	return cabPrefix + hex.EncodeToString(h.Sum(nil))
}

// FakeHexHash returns n random lowercase hex characters. n must be even.
func FakeHexHash(n int) (string, error) {
	if n < 0 || n%2 != 0 {
		return "", fmt.Errorf("%w: hash string length %d is not even", ErrInvalidArgument, n)
	}
	b := make([]byte, n>>1)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

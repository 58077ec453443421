package gifts

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// digester computes a keyed BLAKE2b-256 digest of stored configs so a
// record edited behind the service's back is detected on read.
type digester struct {
	key []byte
}

func newDigester(key []byte) (digester, error) {
	if len(key) > blake2b.Size {
		return digester{}, fmt.Errorf("digest key longer than %d bytes", blake2b.Size)
	}
	return digester{key: key}, nil
}

func (d digester) sum(data []byte) string {
	h, _ := blake2b.New256(d.key) // key length checked in newDigester
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

func (d digester) verify(data []byte, digest string) bool {
	return subtle.ConstantTimeCompare([]byte(d.sum(data)), []byte(digest)) == 1
}

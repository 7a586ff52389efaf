package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/matzehuels/orbit/pkg/errors"
)

// Hash returns the hex SHA-256 digest of data. The pipeline uses it for graph
// and position fingerprints; FileCache uses it for file names.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds "<kind>:<digest>" where the digest covers the JSON encoding
// of parts. Map keys in parts are encoded in sorted order, so equal inputs
// give equal keys. Parts JSON cannot represent, such as NaN, are an error:
// hashing a partial encoding would give unrelated inputs the same key.
func hashKey(kind string, parts ...any) (string, error) {
	h := sha256.New()
	if err := json.NewEncoder(h).Encode(parts); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "encode %s key", kind)
	}
	return kind + ":" + hex.EncodeToString(h.Sum(nil)), nil
}

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey returns "<kind>:<sha256>" over the JSON encoding of parts. Report
// options are structs, so field order in the encoding is stable.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts) // strings, ints and option structs always encode
	return kind + ":" + Hash(data)
}

// Hash is the hex SHA-256 digest of data. Exchange strings are hashed with
// it to identify a blueprint, and the file cache uses it for entry names.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

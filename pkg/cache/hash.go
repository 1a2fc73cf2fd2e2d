package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/matzehuels/dagmatch/pkg/graph"
)

// digest returns the hex SHA-256 of the JSON array of parts, joined to
// namespace with a colon. Parts that fail to encode contribute "null".
func digest(namespace string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return namespace + ":" + Hash(data)
}

// Hash returns the hex-encoded SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// GraphHash hashes the canonical JSON encoding of g. Documents that differ
// only in whitespace or key order hash the same; node and edge order count.
func GraphHash(g graph.Graph) (string, error) {
	data, err := graph.MarshalGraph(g)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}

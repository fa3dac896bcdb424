package value

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// DomainModelVersion is the domain prefix for model version hashes.
// The version suffix allows the hashing scheme itself to change later.
const DomainModelVersion = "state/model-version/v1"

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) []byte {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return h.Sum(nil)
}

// VersionHash computes a stable version tag for a schema shape described by
// parts, typically "name:kind" entries for each persisted field. The order of
// parts is significant.
//
// The tag is rendered as eight space separated groups of hex digits inside
// angle brackets, e.g. "<ab73b735 b1201428 ... d31a5116>".
func VersionHash(parts ...string) string {
	arr := make(Array, len(parts))
	for i, p := range parts {
		arr[i] = String(p)
	}
	canonical, err := MarshalCanonical(arr)
	if err != nil {
		// An array of strings always marshals.
		panic(fmt.Sprintf("VersionHash: %v", err))
	}

	digest := hex.EncodeToString(hashWithDomain(DomainModelVersion, canonical))
	groups := make([]string, 0, len(digest)/8)
	for i := 0; i < len(digest); i += 8 {
		groups = append(groups, digest[i:i+8])
	}
	return "<" + strings.Join(groups, " ") + ">"
}

// HashValue returns the hex SHA-256 of the canonical JSON of v under domain.
// It fails for graphs canonical JSON cannot carry (Bytes, Dict).
func HashValue(domain string, v Value) (string, error) {
	canonical, err := MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("HashValue: %w", err)
	}
	return hex.EncodeToString(hashWithDomain(domain, canonical)), nil
}

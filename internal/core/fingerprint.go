package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"bundle-release/internal/types"
)

// Fingerprint computes a stable content digest of a bundle's service-to-
// image mapping. Each entry is serialized as "<service>=<reference>", the
// lines are sorted so insertion order never matters, and the concatenation
// is hashed. Two bundles pinning the same (service, reference) pairs always
// fingerprint identically.
func Fingerprint(bundle types.Bundle) string {
	lines := make([]string, 0, len(bundle.Services))
	for _, svc := range bundle.Services {
		lines = append(lines, fmt.Sprintf("%s=%s", svc.Name, svc.Image.String()))
	}
	sort.Strings(lines)
	sum := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(sum[:])
}

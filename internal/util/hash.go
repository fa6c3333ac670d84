package util

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// ContentHash derives the stable unique identifier for a clipboard
// capture from its textual content and any associated file paths.
// Identical content always produces the same identifier, across
// processes and across save/load cycles.
func ContentHash(content string, fileURLs []string) string {
	hasher := sha256.New()
	hasher.Write([]byte(content))
	if len(fileURLs) > 0 {
		hasher.Write([]byte(strings.Join(fileURLs, "\x00")))
	}
	return fmt.Sprintf("%x", hasher.Sum(nil))
}

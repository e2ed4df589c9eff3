package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// RepoContext identifies one tracked local repository. It is created on
// first detection and immutable afterwards.
type RepoContext struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// Slug returns the "owner/name" form used for remote calls.
func (r RepoContext) Slug() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

// Hash returns the stable cache partition key for this repository:
// the first 16 hex characters of the SHA-256 of "owner/name".
func (r RepoContext) Hash() string {
	sum := sha256.Sum256([]byte(r.Slug()))
	return hex.EncodeToString(sum[:])[:16]
}

// Package domain defines the core domain models for SnipSync.
package domain

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Snippet constraints.
const (
	MaxSnippetIDLength = 128
	MaxAuthorLength    = 128
	MaxContentLength   = 1 << 20 // 1MB per version

	// DefaultMaxVersionHistory caps retained versions per snippet.
	DefaultMaxVersionHistory = 10

	// SnippetIDPrefix is the prefix for generated snippet IDs.
	SnippetIDPrefix = "snip-"
)

// Snippet is a named, versioned unit of shareable content.
//
// Versions is ordered oldest first. CurrentVersionIndex indexes into
// Versions and identifies the version the snippet resolves to when
// rendered. Once a snippet exists its ledger is never empty.
type Snippet struct {
	// ID is the unique identifier, stable for the snippet's lifetime.
	ID string `json:"id"`

	// Versions is the retained version ledger, oldest first.
	Versions []Version `json:"versions"`

	// CurrentVersionIndex is the index of the current version in Versions.
	CurrentVersionIndex int `json:"current_version_index"`
}

// NewSnippet creates an empty snippet for the given ID.
// The first AppendVersion establishes its initial content.
func NewSnippet(id string) *Snippet {
	return &Snippet{
		ID:                  id,
		Versions:            make([]Version, 0, 1),
		CurrentVersionIndex: 0,
	}
}

// GenerateSnippetID generates a new snippet ID using ULID.
// Format: snip-{ulid_lowercase}.
func GenerateSnippetID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", ErrInternal.WithCause(err)
	}
	return SnippetIDPrefix + strings.ToLower(id.String()), nil
}

// AppendVersion records content as a fresh version, makes it current,
// and trims the ledger down to maxHistory entries (oldest dropped first).
// The new version's Number continues the snippet's monotonic numbering
// regardless of prior trims. This operation never fails.
func (s *Snippet) AppendVersion(content, author string, maxHistory int) Version {
	number := 0
	if n := len(s.Versions); n > 0 {
		number = s.Versions[n-1].Number + 1
	}

	v := Version{
		Number:    number,
		Content:   content,
		Timestamp: time.Now().UTC(),
		Author:    author,
	}
	s.Versions = append(s.Versions, v)
	s.CurrentVersionIndex = len(s.Versions) - 1

	if maxHistory >= 1 && len(s.Versions) > maxHistory {
		drop := len(s.Versions) - maxHistory
		s.Versions = append(s.Versions[:0], s.Versions[drop:]...)
		s.CurrentVersionIndex = len(s.Versions) - 1
	}

	return v
}

// SelectVersion moves the current pointer to the version at index.
// The index addresses the currently retained window, so a version that
// was trimmed away cannot be selected. This is a pointer move only;
// no new version is recorded.
func (s *Snippet) SelectVersion(index int) (Version, error) {
	if index < 0 || index >= len(s.Versions) {
		return Version{}, ErrVersionNotFound.WithDetails(
			fmt.Sprintf("index %d out of range, ledger has %d versions", index, len(s.Versions)))
	}
	s.CurrentVersionIndex = index
	return s.Versions[index], nil
}

// RestoreVersion restores the snippet to the content of the version at
// index. The target content is re-recorded as a fresh append, so the
// restored content becomes the newest version and the full history,
// including the version that was current before the restore, is kept.
func (s *Snippet) RestoreVersion(index int, maxHistory int) (Version, error) {
	target, err := s.SelectVersion(index)
	if err != nil {
		return Version{}, err
	}
	return s.AppendVersion(target.Content, target.Author, maxHistory), nil
}

// CurrentVersion returns the version the snippet currently resolves to.
// Returns false for a snippet whose ledger is still empty.
func (s *Snippet) CurrentVersion() (Version, bool) {
	if len(s.Versions) == 0 {
		return Version{}, false
	}
	if s.CurrentVersionIndex < 0 || s.CurrentVersionIndex >= len(s.Versions) {
		return Version{}, false
	}
	return s.Versions[s.CurrentVersionIndex], true
}

// Clone creates a deep copy of the snippet.
func (s *Snippet) Clone() *Snippet {
	clone := *s
	clone.Versions = make([]Version, len(s.Versions))
	copy(clone.Versions, s.Versions)
	return &clone
}

// Validate validates the snippet ID and ledger shape against constraints.
func (s *Snippet) Validate() error {
	var violations []string

	if s.ID == "" {
		violations = append(violations, "id is required")
	}
	if len(s.ID) > MaxSnippetIDLength {
		violations = append(violations, "id exceeds 128 characters")
	}
	if len(s.Versions) > 0 {
		if s.CurrentVersionIndex < 0 || s.CurrentVersionIndex >= len(s.Versions) {
			violations = append(violations, "current_version_index out of range")
		}
	}
	for _, v := range s.Versions {
		if len(v.Content) > MaxContentLength {
			violations = append(violations, "version content exceeds 1MB")
			break
		}
	}

	if len(violations) > 0 {
		return ErrSnippetValidation.WithDetails(strings.Join(violations, "; "))
	}
	return nil
}

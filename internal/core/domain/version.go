// Package domain defines the core domain models for SnipSync.
package domain

import "time"

// Version is one immutable recorded revision of a snippet's content.
//
// Number is assigned at creation and never reassigned, even after older
// versions are trimmed away: it stays monotonically increasing per snippet
// so that a version keeps its historical identity across retention trims.
type Version struct {
	// Number is the per-snippet monotonic version number, starting at 0.
	Number int `json:"version_number"`

	// Content is the snippet content recorded by this version.
	Content string `json:"content"`

	// Timestamp is the creation time, serialized as RFC3339.
	Timestamp time.Time `json:"timestamp"`

	// Author identifies who recorded this version.
	Author string `json:"author"`
}

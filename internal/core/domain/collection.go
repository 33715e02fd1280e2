// Package domain defines the core domain models for SnipSync.
package domain

import "encoding/json"

// Collection maps snippet IDs to snippets. The whole collection is the
// unit of persistence: both storage tiers read and write it atomically
// as one serialized blob.
type Collection map[string]*Snippet

// NewCollection creates an empty collection.
func NewCollection() Collection {
	return make(Collection)
}

// Clone creates a deep copy of the collection.
func (c Collection) Clone() Collection {
	clone := make(Collection, len(c))
	for id, s := range c {
		clone[id] = s.Clone()
	}
	return clone
}

// Merge merges incoming over the collection at whole-snippet granularity.
// For any ID present in both, the incoming snippet's full version history
// replaces the existing one entirely; there is no version-level merge.
// IDs present only in the existing collection are preserved.
func (c Collection) Merge(incoming Collection) {
	for id, s := range incoming {
		c[id] = s.Clone()
	}
}

// EncodeJSON serializes the collection as plain JSON, the import/export
// interchange payload.
func (c Collection) EncodeJSON() ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, ErrInternal.WithCause(err)
	}
	return data, nil
}

// DecodeCollectionJSON parses a JSON collection payload.
// Malformed input yields ErrMalformedData.
func DecodeCollectionJSON(data []byte) (Collection, error) {
	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, ErrMalformedData.WithCause(err)
	}
	if c == nil {
		c = NewCollection()
	}
	return c, nil
}

// Package scope implements the record visibility rule shared by every
// doctor-owned collection: administrators see all records, doctors see
// only records they own.
package scope

import "github.com/google/uuid"

// Owned is implemented by any record attributed to a doctor.
type Owned interface {
	OwnedBy() uuid.UUID
}

// Viewer identifies who is looking at a collection.
type Viewer struct {
	ID    uuid.UUID
	Admin bool
}

// Visible reports whether the viewer may see a single record.
func Visible(v Viewer, rec Owned) bool {
	if v.Admin {
		return true
	}
	return rec.OwnedBy() == v.ID
}

// Filter returns the subset of recs the viewer may see. The result is
// always non-nil and preserves input order.
func Filter[T Owned](v Viewer, recs []T) []T {
	out := make([]T, 0, len(recs))
	for _, r := range recs {
		if Visible(v, r) {
			out = append(out, r)
		}
	}
	return out
}

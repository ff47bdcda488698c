package model

import "time"

// Metadata is the creation/modification bookkeeping embedded in every
// mutable record. DateCreated and CreatedBy are written once and carried
// over unchanged on every later mutation.
type Metadata struct {
	DateCreated  time.Time
	CreatedBy    string
	LastModified time.Time
	ModifiedBy   string
}

// NewMetadata stamps a freshly created record: both timestamp pairs are
// set to now and both identities to the acting user.
func NewMetadata(actor string, now time.Time) Metadata {
	now = now.UTC()
	return Metadata{
		DateCreated:  now,
		CreatedBy:    actor,
		LastModified: now,
		ModifiedBy:   actor,
	}
}

// Modified returns the metadata for an updated record: creation fields
// are carried over from m, the modification fields are restamped.
func (m Metadata) Modified(actor string, now time.Time) Metadata {
	return Metadata{
		DateCreated:  m.DateCreated,
		CreatedBy:    m.CreatedBy,
		LastModified: now.UTC(),
		ModifiedBy:   actor,
	}
}

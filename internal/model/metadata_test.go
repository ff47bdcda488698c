package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewMetadata(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewMetadata("alice", now)

	assert.Equal(t, now, m.DateCreated)
	assert.Equal(t, "alice", m.CreatedBy)
	assert.Equal(t, now, m.LastModified)
	assert.Equal(t, "alice", m.ModifiedBy)
}

func TestMetadataModified_CarriesCreationFields(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	later := created.Add(48 * time.Hour)

	m := NewMetadata("alice", created)
	updated := m.Modified("bob", later)

	assert.Equal(t, created, updated.DateCreated)
	assert.Equal(t, "alice", updated.CreatedBy)
	assert.Equal(t, later, updated.LastModified)
	assert.Equal(t, "bob", updated.ModifiedBy)
}

package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureIDKeepsExisting(t *testing.T) {
	var b UUIDBase
	b.EnsureID()
	_, err := uuid.Parse(b.ID)
	require.NoError(t, err)

	first := b.ID
	b.EnsureID()
	assert.Equal(t, first, b.ID)

	require.NoError(t, (&UUIDBase{}).BeforeCreate(nil))
	preset := UUIDBase{ID: "fixed"}
	require.NoError(t, preset.BeforeCreate(nil))
	assert.Equal(t, "fixed", preset.ID)
}

func TestTouch(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	later := created.Add(time.Hour)

	var b UUIDBase
	b.Touch(created)
	assert.Equal(t, created, b.CreatedAt)
	assert.Equal(t, created, b.UpdatedAt)

	b.Touch(later)
	assert.Equal(t, created, b.CreatedAt)
	assert.Equal(t, later, b.UpdatedAt)
}

package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAlertCategory_Valid(t *testing.T) {
	assert.True(t, CategoryGeneral.Valid())
	assert.True(t, CategoryMedical.Valid())
	assert.True(t, CategoryFire.Valid())
	assert.True(t, CategoryPolice.Valid())

	assert.False(t, AlertCategory("").Valid())
	assert.False(t, AlertCategory("earthquake").Valid())
}

func TestAlertStatus_Terminal(t *testing.T) {
	assert.False(t, StatusActive.Terminal())
	assert.True(t, StatusResolved.Terminal())
	assert.True(t, StatusFalseAlarm.Terminal())
}

func TestAlert_Clone(t *testing.T) {
	original := &Alert{
		ID:                 uuid.New(),
		Category:           CategoryMedical,
		Location:           Position{Latitude: 25.03, Longitude: 121.56, CapturedAt: time.Now()},
		CreatedAt:          time.Now(),
		Status:             StatusActive,
		Note:               "chest pain",
		NotifiedContactIDs: []uuid.UUID{uuid.New()},
	}

	cloned := original.Clone()
	assert.Equal(t, original, cloned)

	// Mutating the clone must not leak back into the original.
	cloned.Status = StatusResolved
	cloned.NotifiedContactIDs[0] = uuid.New()
	cloned.NotifiedContactIDs = append(cloned.NotifiedContactIDs, uuid.New())

	assert.Equal(t, StatusActive, original.Status)
	assert.Len(t, original.NotifiedContactIDs, 1)
	assert.NotEqual(t, cloned.NotifiedContactIDs[0], original.NotifiedContactIDs[0])
}

package seeds

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"msns_backend/internals/databases/dbtest"
	sessionmodel "msns_backend/internals/features/academics/sessions/model"
	eventmodel "msns_backend/internals/features/events/model"
)

func TestRunAllSeedsTwice(t *testing.T) {
	db := dbtest.Open(t)
	now := time.Date(2025, 2, 14, 8, 0, 0, 0, time.UTC)

	require.NoError(t, RunAllSeeds(db, zerolog.Nop(), now))
	require.NoError(t, RunAllSeeds(db, zerolog.Nop(), now.AddDate(1, 0, 0)))

	var tags int64
	require.NoError(t, db.Model(&eventmodel.TagModel{}).Count(&tags).Error)
	assert.EqualValues(t, 7, tags)

	var sessions []sessionmodel.SessionModel
	require.NoError(t, db.Find(&sessions).Error)
	require.Len(t, sessions, 1)
	assert.Equal(t, "2024-2025", sessions[0].SessionName)
	assert.True(t, sessions[0].IsActive)
}

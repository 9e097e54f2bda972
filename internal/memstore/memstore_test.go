package memstore

import (
	"context"
	"testing"
	"time"

	"prepwise/db"
	"prepwise/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterviewsQueries(t *testing.T) {
	ctx := context.Background()
	store := NewInterviews()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, i := range []models.Interview{
		{ID: "1", UserID: "a", Finalized: true, CreatedAt: base},
		{ID: "2", UserID: "b", Finalized: true, IsCustom: true, Resume: "private cv", JobDescription: "private jd", CreatedAt: base.Add(time.Hour)},
		{ID: "3", UserID: "b", Finalized: false, CreatedAt: base.Add(2 * time.Hour)},
	} {
		i := i
		require.NoError(t, store.Insert(ctx, &i))
	}

	latest, _ := store.FindLatest(ctx, "a", 10)
	require.Len(t, latest, 1)
	assert.Equal(t, "2", latest[0].ID)
	assert.Empty(t, latest[0].Resume)
	assert.Empty(t, latest[0].JobDescription)

	byUser, _ := store.FindByUser(ctx, "b", false)
	require.Len(t, byUser, 2)
	assert.Equal(t, "3", byUser[0].ID)

	custom, _ := store.FindByUser(ctx, "b", true)
	require.Len(t, custom, 1)
	assert.Equal(t, "private cv", custom[0].Resume)

	_, err := store.FindByID(ctx, "x")
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestFeedbackSaveReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewFeedback()

	require.NoError(t, store.Save(ctx, &models.Feedback{ID: "f", InterviewID: "i", UserID: "u", TotalScore: 1}))
	require.NoError(t, store.Save(ctx, &models.Feedback{ID: "f", InterviewID: "i", UserID: "u", TotalScore: 2}))
	assert.Equal(t, 1, store.Len())

	got, err := store.FindByInterview(ctx, "i", "u")
	require.NoError(t, err)
	assert.Equal(t, float64(2), got.TotalScore)

	_, err = store.FindByInterview(ctx, "i", "other")
	assert.ErrorIs(t, err, db.ErrNotFound)
}

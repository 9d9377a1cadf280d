package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vagamatch/vagamatch/internal/domain/models"
)

func Test_Ratings_AverageForUser_WhenNoRatings_ShouldReturnZero(t *testing.T) {

	dbCtx := newTestContext(t)
	repo := NewRatingsRepository(dbCtx.DB)

	average, err := repo.AverageForUser(context.Background(), "cand1")
	require.NoError(t, err)
	assert.Zero(t, average)
}

func Test_Ratings_AverageForUser_ShouldMeanReceivedScores(t *testing.T) {

	dbCtx := newTestContext(t)
	repo := NewRatingsRepository(dbCtx.DB)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, &models.Rating{
		ApplicationID: 1, RaterID: "comp1", RatedUserID: "cand1", Score: 4,
	}))
	require.NoError(t, repo.Add(ctx, &models.Rating{
		ApplicationID: 2, RaterID: "comp2", RatedUserID: "cand1", Score: 5,
	}))
	require.NoError(t, repo.Add(ctx, &models.Rating{
		ApplicationID: 3, RaterID: "comp3", RatedUserID: "cand2", Score: 1,
	}))

	average, err := repo.AverageForUser(ctx, "cand1")
	require.NoError(t, err)
	assert.Equal(t, 4.5, average)
}

func Test_Ratings_Exists_ShouldSeeOnlyTheRatersOwnRating(t *testing.T) {

	dbCtx := newTestContext(t)
	repo := NewRatingsRepository(dbCtx.DB)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, &models.Rating{
		ApplicationID: 1, RaterID: "comp1", RatedUserID: "cand1", Score: 3.5,
	}))

	exists, err := repo.Exists(ctx, 1, "comp1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, 1, "cand1")
	require.NoError(t, err)
	assert.False(t, exists)
}

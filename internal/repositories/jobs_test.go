package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vagamatch/vagamatch/internal/domain/models"
)

func Test_Jobs_Unswiped_ShouldExcludeAlreadySwipedJobs(t *testing.T) {

	dbCtx := newTestContext(t)
	jobs := NewJobsRepository(dbCtx.DB)
	swipes := NewSwipesRepository(dbCtx.DB)
	ctx := context.Background()

	require.NoError(t, jobs.Add(ctx, &models.Job{ID: "job1", CompanyID: "comp1", Title: "Backend dev"}))
	require.NoError(t, jobs.Add(ctx, &models.Job{ID: "job2", CompanyID: "comp1", Title: "Frontend dev"}))
	require.NoError(t, jobs.Add(ctx, &models.Job{ID: "job3", CompanyID: "comp2", Title: "Designer"}))

	_, err := swipes.Add(ctx, &models.Swipe{
		ActorID: "cand1", TargetID: "job2", TargetType: models.TargetJob, Action: models.ActionDislike,
	})
	require.NoError(t, err)

	feed, err := jobs.Unswiped(ctx, "cand1", 10)
	require.NoError(t, err)

	ids := make([]string, 0, len(feed))
	for _, job := range feed {
		ids = append(ids, job.ID)
	}
	assert.ElementsMatch(t, []string{"job1", "job3"}, ids)
}

func Test_Jobs_Unswiped_ShouldRespectLimit(t *testing.T) {

	dbCtx := newTestContext(t)
	jobs := NewJobsRepository(dbCtx.DB)
	ctx := context.Background()

	for _, id := range []string{"job1", "job2", "job3"} {
		require.NoError(t, jobs.Add(ctx, &models.Job{ID: id, CompanyID: "comp1", Title: "Dev"}))
	}

	feed, err := jobs.Unswiped(ctx, "cand1", 2)
	require.NoError(t, err)
	assert.Len(t, feed, 2)
}

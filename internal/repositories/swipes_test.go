package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vagamatch/vagamatch/internal/domain/models"
)

func Test_Swipes_Add_WhenDuplicate_ShouldReportNotCreated(t *testing.T) {

	dbCtx := newTestContext(t)
	repo := NewSwipesRepository(dbCtx.DB)
	ctx := context.Background()

	created, err := repo.Add(ctx, &models.Swipe{
		ActorID: "cand1", TargetID: "job1", TargetType: models.TargetJob, Action: models.ActionLike,
	})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Add(ctx, &models.Swipe{
		ActorID: "cand1", TargetID: "job1", TargetType: models.TargetJob, Action: models.ActionDislike,
	})
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, dbCtx.DB.Model(&models.Swipe{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	swiped, err := repo.HasSwiped(ctx, "cand1", "job1", models.TargetJob)
	require.NoError(t, err)
	assert.True(t, swiped)
}

func Test_Swipes_FindPositive_ShouldIgnoreDislikes(t *testing.T) {

	dbCtx := newTestContext(t)
	repo := NewSwipesRepository(dbCtx.DB)
	ctx := context.Background()

	_, err := repo.Add(ctx, &models.Swipe{
		ActorID: "comp1", TargetID: "cand1", TargetType: models.TargetCandidate, Action: models.ActionDislike,
	})
	require.NoError(t, err)

	swipe, err := repo.FindPositive(ctx, "comp1", "cand1", models.TargetCandidate)
	require.NoError(t, err)
	assert.Nil(t, swipe)

	_, err = repo.Add(ctx, &models.Swipe{
		ActorID: "comp1", TargetID: "cand2", TargetType: models.TargetCandidate, Action: models.ActionSuperLike,
	})
	require.NoError(t, err)

	swipe, err = repo.FindPositive(ctx, "comp1", "cand2", models.TargetCandidate)
	require.NoError(t, err)
	require.NotNil(t, swipe)
	assert.Equal(t, models.ActionSuperLike, swipe.Action)
}

func Test_Swipes_SwipedTargetIDs_ShouldFilterByTargetType(t *testing.T) {

	dbCtx := newTestContext(t)
	repo := NewSwipesRepository(dbCtx.DB)
	ctx := context.Background()

	_, err := repo.Add(ctx, &models.Swipe{
		ActorID: "comp1", TargetID: "cand1", TargetType: models.TargetCandidate, Action: models.ActionLike,
	})
	require.NoError(t, err)
	_, err = repo.Add(ctx, &models.Swipe{
		ActorID: "comp1", TargetID: "job1", TargetType: models.TargetJob, Action: models.ActionLike,
	})
	require.NoError(t, err)

	ids, err := repo.SwipedTargetIDs(ctx, "comp1", models.TargetCandidate)
	require.NoError(t, err)
	assert.Equal(t, []string{"cand1"}, ids)
}

func Test_Swipes_Find_ShouldReturnStoredActionAfterAbsorbedDuplicate(t *testing.T) {

	dbCtx := newTestContext(t)
	repo := NewSwipesRepository(dbCtx.DB)
	ctx := context.Background()

	_, err := repo.Add(ctx, &models.Swipe{
		ActorID: "cand1", TargetID: "job1", TargetType: models.TargetJob, Action: models.ActionDislike,
	})
	require.NoError(t, err)
	_, err = repo.Add(ctx, &models.Swipe{
		ActorID: "cand1", TargetID: "job1", TargetType: models.TargetJob, Action: models.ActionLike,
	})
	require.NoError(t, err)

	swipe, err := repo.Find(ctx, "cand1", "job1", models.TargetJob)
	require.NoError(t, err)
	require.NotNil(t, swipe)
	assert.Equal(t, models.ActionDislike, swipe.Action)

	missing, err := repo.Find(ctx, "cand2", "job1", models.TargetJob)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func Test_Swipes_RemoveByTarget_ShouldDropSwipesAimedAtActor(t *testing.T) {

	dbCtx := newTestContext(t)
	repo := NewSwipesRepository(dbCtx.DB)
	ctx := context.Background()

	_, err := repo.Add(ctx, &models.Swipe{
		ActorID: "comp1", TargetID: "cand1", TargetType: models.TargetCandidate, Action: models.ActionLike,
	})
	require.NoError(t, err)
	_, err = repo.Add(ctx, &models.Swipe{
		ActorID: "comp2", TargetID: "cand2", TargetType: models.TargetCandidate, Action: models.ActionLike,
	})
	require.NoError(t, err)

	require.NoError(t, repo.RemoveByTarget(ctx, "cand1"))

	swiped, err := repo.HasSwiped(ctx, "comp1", "cand1", models.TargetCandidate)
	require.NoError(t, err)
	assert.False(t, swiped)

	swiped, err = repo.HasSwiped(ctx, "comp2", "cand2", models.TargetCandidate)
	require.NoError(t, err)
	assert.True(t, swiped)
}

func Test_Swipes_RemoveTargetingCompanyJobs_ShouldOnlyDropSwipesOnOwnJobs(t *testing.T) {

	dbCtx := newTestContext(t)
	swipes := NewSwipesRepository(dbCtx.DB)
	jobs := NewJobsRepository(dbCtx.DB)
	ctx := context.Background()

	require.NoError(t, jobs.Add(ctx, &models.Job{ID: "job1", CompanyID: "comp1", Title: "Backend dev"}))
	require.NoError(t, jobs.Add(ctx, &models.Job{ID: "job2", CompanyID: "comp2", Title: "Designer"}))

	_, err := swipes.Add(ctx, &models.Swipe{
		ActorID: "cand1", TargetID: "job1", TargetType: models.TargetJob, Action: models.ActionLike,
	})
	require.NoError(t, err)
	_, err = swipes.Add(ctx, &models.Swipe{
		ActorID: "cand1", TargetID: "job2", TargetType: models.TargetJob, Action: models.ActionLike,
	})
	require.NoError(t, err)

	require.NoError(t, swipes.RemoveTargetingCompanyJobs(ctx, "comp1"))

	swiped, err := swipes.HasSwiped(ctx, "cand1", "job1", models.TargetJob)
	require.NoError(t, err)
	assert.False(t, swiped)

	swiped, err = swipes.HasSwiped(ctx, "cand1", "job2", models.TargetJob)
	require.NoError(t, err)
	assert.True(t, swiped)
}

package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vagamatch/vagamatch/internal/domain/events"
	"github.com/vagamatch/vagamatch/internal/domain/models"
)

type mockSwipes struct {
	mock.Mock
}

func (m *mockSwipes) FindPositive(ctx context.Context, actorID, targetID string,
	targetType models.TargetType) (*models.Swipe, error) {
	args := m.Called(ctx, actorID, targetID, targetType)
	swipe, _ := args.Get(0).(*models.Swipe)
	return swipe, args.Error(1)
}

type mockJobs struct {
	mock.Mock
}

func (m *mockJobs) GetByID(ctx context.Context, id string) (*models.Job, error) {
	args := m.Called(ctx, id)
	job, _ := args.Get(0).(*models.Job)
	return job, args.Error(1)
}

func (m *mockJobs) GetByCompany(ctx context.Context, companyID string) ([]models.Job, error) {
	args := m.Called(ctx, companyID)
	jobs, _ := args.Get(0).([]models.Job)
	return jobs, args.Error(1)
}

type mockMatches struct {
	mock.Mock
}

func (m *mockMatches) CreateIfAbsent(ctx context.Context, match *models.Match) (bool, error) {
	args := m.Called(ctx, match)
	return args.Bool(0), args.Error(1)
}

func subscribeMatchCreated(t *testing.T, bus EventBus.Bus) *[]events.MatchCreated {
	var received []events.MatchCreated
	err := bus.Subscribe(events.MatchCreatedTopic, func(event events.MatchCreated) {
		received = append(received, event)
	})
	require.NoError(t, err)
	return &received
}

func Test_MatchDetector_WhenCandidateSwipesLast_ShouldCreateMatch(t *testing.T) {

	bus := EventBus.New()
	job := &models.Job{ID: "job1", CompanyID: "comp1", Title: "Backend dev"}

	jobs := &mockJobs{}
	jobs.On("GetByID", mock.Anything, "job1").Return(job, nil)

	swipes := &mockSwipes{}
	swipes.On("FindPositive", mock.Anything, "comp1", "cand1", models.TargetCandidate).
		Return(&models.Swipe{ActorID: "comp1"}, nil)

	matches := &mockMatches{}
	matches.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(true, nil).Once()

	detector, err := NewMatchDetector(bus, swipes, jobs, matches)
	require.NoError(t, err)
	received := subscribeMatchCreated(t, bus)

	err = detector.Detect(context.Background(), models.Swipe{
		ActorID: "cand1", TargetID: "job1", TargetType: models.TargetJob, Action: models.ActionLike,
	})
	require.NoError(t, err)

	matches.AssertExpectations(t)
	require.Len(t, *received, 1)
	assert.Equal(t, "cand1", (*received)[0].Match.CandidateID)
	assert.Equal(t, "job1", (*received)[0].Job.ID)
}

func Test_MatchDetector_WhenCompanySwipesLast_ShouldCreateMatchForLikedJobOnly(t *testing.T) {

	bus := EventBus.New()
	jobs := &mockJobs{}
	jobs.On("GetByCompany", mock.Anything, "comp1").Return([]models.Job{
		{ID: "job1", CompanyID: "comp1"},
		{ID: "job2", CompanyID: "comp1"},
	}, nil)

	swipes := &mockSwipes{}
	swipes.On("FindPositive", mock.Anything, "cand1", "job1", models.TargetJob).
		Return(&models.Swipe{ActorID: "cand1"}, nil)
	swipes.On("FindPositive", mock.Anything, "cand1", "job2", models.TargetJob).
		Return(nil, nil)

	matches := &mockMatches{}
	matches.On("CreateIfAbsent", mock.Anything, mock.MatchedBy(func(match *models.Match) bool {
		return match.JobID == "job1" && match.CandidateID == "cand1"
	})).Return(true, nil).Once()

	detector, err := NewMatchDetector(bus, swipes, jobs, matches)
	require.NoError(t, err)

	err = detector.Detect(context.Background(), models.Swipe{
		ActorID: "comp1", TargetID: "cand1", TargetType: models.TargetCandidate, Action: models.ActionSuperLike,
	})
	require.NoError(t, err)
	matches.AssertExpectations(t)
}

func Test_MatchDetector_WhenDislike_ShouldDoNothing(t *testing.T) {

	bus := EventBus.New()
	jobs := &mockJobs{}
	swipes := &mockSwipes{}
	matches := &mockMatches{}

	detector, err := NewMatchDetector(bus, swipes, jobs, matches)
	require.NoError(t, err)

	err = detector.Detect(context.Background(), models.Swipe{
		ActorID: "cand1", TargetID: "job1", TargetType: models.TargetJob, Action: models.ActionDislike,
	})
	require.NoError(t, err)

	matches.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
	swipes.AssertNotCalled(t, "FindPositive", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func Test_MatchDetector_WhenCounterpartNotInterested_ShouldNotCreate(t *testing.T) {

	bus := EventBus.New()
	job := &models.Job{ID: "job1", CompanyID: "comp1"}

	jobs := &mockJobs{}
	jobs.On("GetByID", mock.Anything, "job1").Return(job, nil)

	swipes := &mockSwipes{}
	swipes.On("FindPositive", mock.Anything, "comp1", "cand1", models.TargetCandidate).
		Return(nil, nil)

	matches := &mockMatches{}

	detector, err := NewMatchDetector(bus, swipes, jobs, matches)
	require.NoError(t, err)

	err = detector.Detect(context.Background(), models.Swipe{
		ActorID: "cand1", TargetID: "job1", TargetType: models.TargetJob, Action: models.ActionLike,
	})
	require.NoError(t, err)
	matches.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
}

func Test_MatchDetector_WhenMatchAlreadyExists_ShouldNotPublishAgain(t *testing.T) {

	bus := EventBus.New()
	job := &models.Job{ID: "job1", CompanyID: "comp1"}

	jobs := &mockJobs{}
	jobs.On("GetByID", mock.Anything, "job1").Return(job, nil)

	swipes := &mockSwipes{}
	swipes.On("FindPositive", mock.Anything, "comp1", "cand1", models.TargetCandidate).
		Return(&models.Swipe{ActorID: "comp1"}, nil)

	matches := &mockMatches{}
	matches.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(false, nil)

	detector, err := NewMatchDetector(bus, swipes, jobs, matches)
	require.NoError(t, err)
	received := subscribeMatchCreated(t, bus)

	err = detector.Detect(context.Background(), models.Swipe{
		ActorID: "cand1", TargetID: "job1", TargetType: models.TargetJob, Action: models.ActionLike,
	})
	require.NoError(t, err)
	assert.Empty(t, *received)
}

// onceMatchCreator reports created only for the first insert of each triple,
// like the unique index does.
type onceMatchCreator struct {
	mu    sync.Mutex
	seen  map[string]bool
	calls int
}

func (c *onceMatchCreator) CreateIfAbsent(_ context.Context, match *models.Match) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seen == nil {
		c.seen = make(map[string]bool)
	}
	c.calls++
	key := match.CandidateID + "|" + match.JobID
	if c.seen[key] {
		return false, nil
	}
	c.seen[key] = true
	return true, nil
}

func Test_MatchDetector_WhenBothSidesSwipeConcurrently_ShouldCreateSingleMatch(t *testing.T) {

	bus := EventBus.New()
	job := models.Job{ID: "job1", CompanyID: "comp1", Title: "Backend dev"}

	jobs := &mockJobs{}
	jobs.On("GetByID", mock.Anything, "job1").Return(&job, nil)
	jobs.On("GetByCompany", mock.Anything, "comp1").Return([]models.Job{job}, nil)

	// Both complementary swipes are already visible, as happens when the two
	// inserts land at nearly the same moment.
	swipes := &mockSwipes{}
	swipes.On("FindPositive", mock.Anything, "comp1", "cand1", models.TargetCandidate).
		Return(&models.Swipe{ActorID: "comp1"}, nil)
	swipes.On("FindPositive", mock.Anything, "cand1", "job1", models.TargetJob).
		Return(&models.Swipe{ActorID: "cand1"}, nil)

	matches := &onceMatchCreator{}

	detector, err := NewMatchDetector(bus, swipes, jobs, matches)
	require.NoError(t, err)

	var published int32
	require.NoError(t, bus.Subscribe(events.MatchCreatedTopic, func(_ events.MatchCreated) {
		atomic.AddInt32(&published, 1)
	}))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, detector.Detect(context.Background(), models.Swipe{
			ActorID: "cand1", TargetID: "job1", TargetType: models.TargetJob, Action: models.ActionLike,
		}))
	}()
	go func() {
		defer wg.Done()
		assert.NoError(t, detector.Detect(context.Background(), models.Swipe{
			ActorID: "comp1", TargetID: "cand1", TargetType: models.TargetCandidate, Action: models.ActionLike,
		}))
	}()
	wg.Wait()

	assert.Equal(t, 2, matches.calls)
	assert.Len(t, matches.seen, 1)
	assert.EqualValues(t, 1, atomic.LoadInt32(&published))
}

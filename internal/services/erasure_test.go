package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vagamatch/vagamatch/internal/domain/models"
)

// recordingEraser satisfies every erasable dependency at once and records
// which identifiers were passed in.
type recordingEraser struct {
	byActor       []string
	byTarget      []string
	byUser        []string
	byCompany     []string
	jobSwipes     []string
	jobApplicants []string
	profiles      []string
}

func (r *recordingEraser) RemoveByActor(_ context.Context, actorID string) error {
	r.byActor = append(r.byActor, actorID)
	return nil
}

func (r *recordingEraser) RemoveByTarget(_ context.Context, targetID string) error {
	r.byTarget = append(r.byTarget, targetID)
	return nil
}

func (r *recordingEraser) RemoveTargetingCompanyJobs(_ context.Context, companyID string) error {
	r.jobSwipes = append(r.jobSwipes, companyID)
	return nil
}

func (r *recordingEraser) RemoveByCompanyJobs(_ context.Context, companyID string) error {
	r.jobApplicants = append(r.jobApplicants, companyID)
	return nil
}

func (r *recordingEraser) RemoveByUser(_ context.Context, userID string) error {
	r.byUser = append(r.byUser, userID)
	return nil
}

func (r *recordingEraser) RemoveByCompany(_ context.Context, companyID string) error {
	r.byCompany = append(r.byCompany, companyID)
	return nil
}

func (r *recordingEraser) Remove(_ context.Context, id string) error {
	r.profiles = append(r.profiles, id)
	return nil
}

func Test_Erasure_CandidateErasesThemselves(t *testing.T) {

	eraser := &recordingEraser{}
	service := NewErasureService(eraser, eraser, eraser, eraser, eraser, eraser, eraser, eraser)

	err := service.Erase(context.Background(), candidate, candidate)
	require.NoError(t, err)

	// Swipes, matches, applications, ratings and testimonials all go by actor.
	assert.Len(t, eraser.byActor, 5)
	assert.Equal(t, []string{"cand1"}, eraser.byTarget)
	assert.Equal(t, []string{"cand1"}, eraser.byUser)
	assert.Equal(t, []string{"cand1"}, eraser.profiles)
	assert.Empty(t, eraser.byCompany)
	assert.Empty(t, eraser.jobSwipes)
	assert.Empty(t, eraser.jobApplicants)
}

func Test_Erasure_CompanyErasureRemovesItsJobs(t *testing.T) {

	eraser := &recordingEraser{}
	service := NewErasureService(eraser, eraser, eraser, eraser, eraser, eraser, eraser, eraser)

	err := service.Erase(context.Background(), company, company)
	require.NoError(t, err)
	assert.Equal(t, []string{"comp1"}, eraser.byCompany)
	assert.Equal(t, []string{"comp1"}, eraser.jobSwipes)
	assert.Equal(t, []string{"comp1"}, eraser.jobApplicants)
}

func Test_Erasure_ByAnotherUser_ShouldReturnUnauthorized(t *testing.T) {

	eraser := &recordingEraser{}
	service := NewErasureService(eraser, eraser, eraser, eraser, eraser, eraser, eraser, eraser)

	err := service.Erase(context.Background(), company, candidate)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	assert.Empty(t, eraser.byActor)
}

func Test_Erasure_ByAdmin_ShouldWork(t *testing.T) {

	eraser := &recordingEraser{}
	service := NewErasureService(eraser, eraser, eraser, eraser, eraser, eraser, eraser, eraser)

	admin := models.Actor{ID: "admin1", Role: models.RoleAdmin}
	err := service.Erase(context.Background(), admin, candidate)
	require.NoError(t, err)
	assert.Equal(t, []string{"cand1"}, eraser.profiles)
}

package models

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

type ExperienceLevel string

const (
	ExperienceEntry  ExperienceLevel = "entry"
	ExperienceJunior ExperienceLevel = "junior"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
)

type WorkModel string

const (
	WorkOnsite WorkModel = "onsite"
	WorkHybrid WorkModel = "hybrid"
	WorkRemote WorkModel = "remote"
)

// Job is a posting owned by exactly one company. Ownership never transfers.
type Job struct {
	ID              string `gorm:"primaryKey"`
	CompanyID       string `gorm:"index"`
	Title           string
	Description     string
	Location        string
	Salary          string
	Experience      ExperienceLevel
	Specializations string
	WorkModel       WorkModel
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewJob(id, companyID, title, description, location, salary string,
	experience ExperienceLevel, specializations []string, workModel WorkModel) Job {

	return Job{
		ID:              id,
		CompanyID:       companyID,
		Title:           title,
		Description:     description,
		Location:        location,
		Salary:          salary,
		Experience:      experience,
		Specializations: strings.Join(specializations, ","),
		WorkModel:       workModel,
	}
}

func (j *Job) SpecializationsAsArray() []string {
	if j.Specializations == "" {
		return []string{}
	}
	return lo.Map(strings.Split(j.Specializations, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	})
}

package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/vagamatch/vagamatch/internal/domain/models"
	"github.com/vagamatch/vagamatch/internal/logger"
	"github.com/vagamatch/vagamatch/internal/metrics"
)

type expiringApplications interface {
	ActiveEndedBefore(ctx context.Context, cutoff time.Time) ([]models.Application, error)
}

type applicationCompleter interface {
	Complete(ctx context.Context, actor models.Actor, applicationID int) error
}

// ContractSweeper completes active contracts whose working period has elapsed.
// Companies can still complete explicitly; the sweeper is the date-based
// fallback so contracts do not stay active forever.
type ContractSweeper struct {
	applications expiringApplications
	completer    applicationCompleter
	cron         *cron.Cron
}

func NewContractSweeper(applications expiringApplications, completer applicationCompleter,
	spec string) (*ContractSweeper, error) {

	if spec == "" {
		return nil, errors.New("sweep cron spec must not be empty")
	}

	s := &ContractSweeper{
		applications: applications,
		completer:    completer,
		cron:         cron.New(),
	}

	if _, err := s.cron.AddFunc(spec, s.sweep); err != nil {
		return nil, err
	}

	s.cron.Start()
	log.Infof("contract sweeper started with schedule %q", spec)
	return s, nil
}

func (s *ContractSweeper) Stop() {
	s.cron.Stop()
}

func (s *ContractSweeper) sweep() {
	start := time.Now()
	defer func() {
		metrics.ContractSweepDuration.Observe(time.Since(start).Seconds())
	}()

	expired, err := s.applications.ActiveEndedBefore(context.Background(), truncateToDay(time.Now()))
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to list expired contracts: %v", err)
		return
	}

	completed := 0
	admin := models.Actor{ID: "contract-sweeper", Role: models.RoleAdmin}
	for _, application := range expired {
		if err = s.completer.Complete(context.Background(), admin, application.ID); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("failed to complete expired contract %v: %v", application.ID, err)
			continue
		}
		completed++
	}

	log.Infof("contract sweep finished, completed %v of %v expired contracts", completed, len(expired))
}

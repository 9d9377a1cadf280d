package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
	"github.com/vagamatch/vagamatch/internal/clients/gemini"
	"github.com/vagamatch/vagamatch/internal/config"
	"github.com/vagamatch/vagamatch/internal/logger"
	"github.com/vagamatch/vagamatch/internal/metrics"
	"github.com/vagamatch/vagamatch/internal/repositories"
	"github.com/vagamatch/vagamatch/internal/services"
)

// app is the composition root: every service wired to the shared bus and
// storage, ready for whatever surface embeds them.
type app struct {
	Swipes       *services.SwipeService
	Matches      *services.MatchService
	Applications *services.ApplicationService
	Ratings      *services.RatingService
	Testimonials *services.TestimonialService
	Jobs         *services.JobService
	Assistant    *services.AssistantService
	Erasure      *services.ErasureService
	sweeper      *services.ContractSweeper
}

func buildApp(ctx context.Context, cfg *config.Config, dbContext *repositories.DbContext) *app {

	swipes := repositories.NewSwipesRepository(dbContext.DB)
	matches := repositories.NewMatchesRepository(dbContext.DB)
	applications := repositories.NewApplicationsRepository(dbContext.DB)
	jobs := repositories.NewJobsRepository(dbContext.DB)
	ratings := repositories.NewRatingsRepository(dbContext.DB)
	testimonials := repositories.NewTestimonialsRepository(dbContext.DB)
	profiles := repositories.NewProfilesRepository(dbContext.DB)
	notifications := repositories.NewNotificationsRepository(dbContext.DB)

	bus := EventBus.New()

	if _, err := services.NewMatchDetector(bus, swipes, jobs, matches); err != nil {
		log.Fatalf("can't create match detector: %v", err)
	}
	if _, err := services.NewNotifier(bus, notifications); err != nil {
		log.Fatalf("can't create notifier: %v", err)
	}

	applicationService := services.NewApplicationService(bus, applications, jobs)

	sweeper, err := services.NewContractSweeper(applications, applicationService, cfg.Sweep.Cron)
	if err != nil {
		log.Fatalf("can't create contract sweeper: %v", err)
	}

	aiClient, err := gemini.NewClient(ctx, cfg.AI.Key, gemini.Model(cfg.AI.Model))
	if err != nil {
		log.Fatalf("can't create AI client: %v", err)
	}
	aiClient.SetMinuteRateLimit(cfg.AI.MaxRequestsPerMinute)
	aiClient.SetDayRateLimit(cfg.AI.MaxRequestsPerDay)

	return &app{
		Swipes:       services.NewSwipeService(bus, swipes, jobs, applications, profiles),
		Matches:      services.NewMatchService(matches, jobs, profiles),
		Applications: applicationService,
		Ratings:      services.NewRatingService(ratings, applications, jobs, profiles),
		Testimonials: services.NewTestimonialService(testimonials, applications, jobs),
		Jobs:         services.NewJobService(jobs),
		Assistant:    services.NewAssistantService(aiClient, profiles),
		Erasure: services.NewErasureService(swipes, matches, applications, ratings,
			testimonials, notifications, jobs, profiles),
		sweeper: sweeper,
	}
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(cfg.Server.MetricsPort)

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	application := buildApp(ctx, cfg, dbContext)
	defer application.sweeper.Stop()

	<-ctx.Done()

	log.Info("Shutting down services...")
	log.Info("Services stopped.")
}

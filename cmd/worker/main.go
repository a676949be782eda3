package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/robfig/cron/v3"

	"github.com/nordiccodeworks/portfolio-backend/config"
	"github.com/nordiccodeworks/portfolio-backend/internal/bootstrap"
	chatbotrepo "github.com/nordiccodeworks/portfolio-backend/internal/chatbot/repository"
	"github.com/nordiccodeworks/portfolio-backend/internal/projects/cache"
	"github.com/nordiccodeworks/portfolio-backend/internal/projects/domain"
	projectrepo "github.com/nordiccodeworks/portfolio-backend/internal/projects/repository"
	projectservice "github.com/nordiccodeworks/portfolio-backend/internal/projects/service"
	"github.com/nordiccodeworks/portfolio-backend/internal/queue"
)

// warmSchedule re-populates the most common project queries so visitors
// rarely hit a cold cache after an invalidation.
const warmSchedule = "@every 15m"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if cfg.Queue.NATSURL == "" {
		log.Fatal("NATS_URL is required for the worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN()})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	redisClient, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("open redis: %v", err)
	}
	defer redisClient.Close()

	wmLogger := watermill.NewStdLogger(false, false)

	sub, err := queue.NewNATSSubscriber(cfg.Queue.NATSURL, wmLogger)
	if err != nil {
		log.Fatalf("open queue: %v", err)
	}

	worker := queue.NewWorker(sub, cfg.Queue.Topic, chatbotrepo.NewChatLogRepository(db), wmLogger)
	router, err := worker.Router()
	if err != nil {
		log.Fatalf("build worker router: %v", err)
	}

	projSvc := projectservice.NewProjectService(
		projectrepo.NewProjectRepository(db),
		cache.NewProjectCache(redisClient, cfg.Redis.CacheTTL),
	)

	c := cron.New()
	if _, err := c.AddFunc(warmSchedule, func() { warmProjectCache(ctx, projSvc) }); err != nil {
		log.Fatalf("schedule cache warm: %v", err)
	}
	c.Start()
	defer c.Stop()

	log.Printf("[info] operation=worker_start topic=%s", cfg.Queue.Topic)
	if err := router.Run(ctx); err != nil {
		log.Fatalf("run worker: %v", err)
	}
}

// warmProjectCache issues the landing-page queries through the read-through
// path, which repopulates the cache as a side effect.
func warmProjectCache(ctx context.Context, svc *projectservice.ProjectService) {
	featured := true
	for _, f := range []domain.Filter{
		{},
		{Featured: &featured},
		{Status: domain.StatusCompleted},
	} {
		if _, err := svc.List(ctx, f); err != nil {
			log.Printf("[error] operation=cache_warm error=%v", err)
		}
	}
}

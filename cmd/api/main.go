package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/nordiccodeworks/portfolio-backend/config"
	"github.com/nordiccodeworks/portfolio-backend/internal/bootstrap"
	"github.com/nordiccodeworks/portfolio-backend/internal/chatbot/openai"
	chatbotrepo "github.com/nordiccodeworks/portfolio-backend/internal/chatbot/repository"
	"github.com/nordiccodeworks/portfolio-backend/internal/queue"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

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

	var (
		pub message.Publisher
		sub message.Subscriber
	)
	if cfg.Queue.NATSURL != "" {
		pub, err = queue.NewNATSPublisher(cfg.Queue.NATSURL, wmLogger)
		if err != nil {
			log.Fatalf("open queue: %v", err)
		}
	} else {
		// Without a broker the consumer has to live in this process,
		// otherwise chat logs would never be written.
		pubsub := queue.NewInProcessPubSub(wmLogger)
		pub, sub = pubsub, pubsub
	}

	publisher := queue.NewPublisher(pub, cfg.Queue.Topic)
	defer publisher.Close()

	if sub != nil {
		worker := queue.NewWorker(sub, cfg.Queue.Topic, chatbotrepo.NewChatLogRepository(db), wmLogger)
		router, err := worker.Router()
		if err != nil {
			log.Fatalf("build worker router: %v", err)
		}
		go func() {
			if err := router.Run(ctx); err != nil {
				log.Printf("[error] operation=inprocess_worker error=%v", err)
			}
		}()
	}

	engine := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "portfolio-api",
		Config:      cfg,
		DB:          db,
		Redis:       redisClient,
		Completer:   openai.NewClient(cfg.OpenAI),
		Publisher:   publisher,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("[info] operation=serve addr=%s env=%s", srv.Addr, cfg.App.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[info] operation=shutdown starting")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[error] operation=shutdown error=%v", err)
	}
}

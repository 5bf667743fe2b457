package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bizledger/internal/cache"
	"bizledger/internal/config"
	"bizledger/internal/http/handlers"
	applog "bizledger/internal/log"
	"bizledger/internal/messaging"
	"bizledger/internal/repos"
	"bizledger/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if f, err := applog.TeeFile(cfg.LogFile); err != nil {
		log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
	} else if f != nil {
		defer f.Close()
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Summary cache is optional
	var summaryCache services.SummaryCache
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.SummaryCacheTTL)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer rc.Close()
		summaryCache = cache.NewSummaryCache(rc)
		log.Printf("[cache] summaries cached in redis at %s for %s", cfg.RedisAddr, cfg.SummaryCacheTTL)
	}

	// Outbound replies: broker when configured, log otherwise
	var sender messaging.Sender = messaging.LogSender{}
	if cfg.AMQPURL != "" {
		mq, err := messaging.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			log.Fatalf("rabbitmq: %v", err)
		}
		defer mq.Close()
		rs, err := messaging.NewRabbitSender(mq, cfg.ReplyQueue)
		if err != nil {
			log.Fatalf("rabbitmq: %v", err)
		}
		sender = rs
		log.Printf("[messaging] replies published to queue %s", cfg.ReplyQueue)
	}

	deps := handlers.NewDeps(db, cfg, summaryCache, sender)
	app := handlers.NewApp(deps)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		applog.Info(nil, "server.shutdown", nil)
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	applog.Info(nil, "server.start", map[string]any{"port": cfg.Port})
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"CoinbasePremium/internal/collector"
	"CoinbasePremium/internal/config"
	"CoinbasePremium/internal/notifier"
	"CoinbasePremium/internal/publisher"
	"CoinbasePremium/internal/recorder"
	"CoinbasePremium/internal/runner"
	"CoinbasePremium/internal/scheduler"
	"CoinbasePremium/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] Coinbase premium fetcher starting...")

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Feeds
	client := collector.NewHTTPClient(cfg.Proxy, cfg.Feeds.Timeout)
	col := collector.NewCollector(
		collector.NewCoinGeckoFetcher(cfg.Feeds.CoinGeckoURL, cfg.Feeds.CoinID, cfg.Feeds.VsCurrency, cfg.Feeds.Days, client),
		collector.NewCoinbaseFetcher(cfg.Feeds.CoinbaseURL, cfg.Feeds.CoinbasePair, client),
		collector.NewBinanceFetcher(cfg.Feeds.BinanceURL, cfg.Feeds.BinanceSymbol, client),
	)

	run := runner.New(store.NewFileStore(cfg.Output.DataFile), col)

	// Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		} else {
			run.Recorder = sr
			defer sr.Close()
		}
	}

	// Publisher
	if cfg.S3Enabled() {
		pub, err := publisher.NewS3Publisher(ctx, publisher.S3Config{
			Endpoint:       cfg.S3.Endpoint,
			Region:         cfg.S3.Region,
			Bucket:         cfg.S3.Bucket,
			Key:            cfg.S3.Key,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			ForcePathStyle: cfg.S3.ForcePathStyle,
			CacheControl:   cfg.S3.CacheControl,
		})
		if err != nil {
			log.Printf("[WARN] init s3 publisher failed, upload disabled: %v", err)
		} else {
			run.Publisher = pub
			log.Printf("[INFO] publishing to %s", pub.Name())
		}
	}

	// Notifier
	if cfg.TelegramEnabled() {
		run.Notifier = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	}

	if cfg.Schedule.Cron == "" {
		if _, err := run.Run(ctx); err != nil {
			log.Printf("[ERROR] run failed: %v", err)
			run.Recorder.Close()
			os.Exit(1)
		}
		log.Println("[INFO] done")
		return
	}

	sched := scheduler.NewScheduler(ctx, run)
	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing fetch task now")
		go sched.RunNow()
	}

	log.Printf("[INFO] scheduled on %q. Press Ctrl+C to stop.", cfg.Schedule.Cron)
	<-ctx.Done()
	log.Println("[INFO] shutdown signal received, stopping...")
}

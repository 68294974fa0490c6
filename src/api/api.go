package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/realorrender/realorrender/src/adjudicator"
	"github.com/realorrender/realorrender/src/ai"
	"github.com/realorrender/realorrender/src/analyzer"
	"github.com/realorrender/realorrender/src/api/config"
	"github.com/realorrender/realorrender/src/api/data"
	"github.com/realorrender/realorrender/src/api/webserver"
	"github.com/realorrender/realorrender/src/cache"
	"github.com/realorrender/realorrender/src/extract"
	"github.com/realorrender/realorrender/src/scoring"
	"github.com/realorrender/realorrender/src/verify"
)

func migrate(db *gorm.DB) {
	if err := db.AutoMigrate(&data.ReportRecord{}, &data.PostRecord{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}

func main() {
	cfg := config.Load()

	db := data.MustMySQL(cfg.MySQLDSN)
	migrate(db)
	rdb := data.MustRedis(cfg.RedisURL)

	reports := data.NewReports(db)
	posts := data.NewPosts(db)

	analyzerClient := ai.New(ai.Config{
		APIKey:  cfg.AnalyzerKey,
		BaseURL: cfg.AnalyzerURL,
		Model:   cfg.AnalyzerModel,
	})
	adjudicatorClient := ai.New(ai.Config{
		APIKey:    cfg.AdjudicatorKey,
		BaseURL:   cfg.AdjudicatorURL,
		Model:     cfg.AdjudicatorModel,
		WebSearch: true,
	})
	if analyzerClient == nil {
		log.Printf("analyzer provider disabled, running on local fallback")
	}
	if adjudicatorClient == nil {
		log.Printf("adjudicator provider disabled, running on local fallback")
	}

	pipeline := &verify.Pipeline{
		Extractor:   extract.New(time.Duration(cfg.FetchTimeout) * time.Second),
		Analyzer:    analyzer.New(analyzerClient),
		Adjudicator: adjudicator.New(adjudicatorClient, cache.NewRedisStore(rdb)),
		Reports:     reports,
		Policy:      scoring.DefaultPolicy(),
	}

	router := webserver.New(cfg, pipeline, reports, posts)
	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Printf("RealOrRender API listening on %s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bookstore/internal/book"
	"bookstore/internal/config"
	"bookstore/internal/metrics"
	"bookstore/internal/queries"
	"bookstore/internal/runlog"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("cannot load configuration: %v", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		log.Printf("%v (is MONGODB_ATLAS_URI set?)", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := book.Open(ctx, cfg.Mongo, cfg.RequestTimeout)
	if err != nil {
		log.Printf("cannot open books collection at %s: %v", redactURI(cfg.Mongo.URI), err)
		return 1
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			log.Printf("disconnect: %v", err)
		}
	}()
	log.Printf("connected to %s (%s profile)", redactURI(cfg.Mongo.URI), cfg.Mongo.Name)

	opts := []queries.Option{
		queries.WithRate(cfg.QueryRate),
		queries.WithObserver(metrics.New(cfg.MetricsTextfile)),
	}
	if cfg.RunsDSN != "" {
		if pool := openRunLog(ctx, cfg.RunsDSN); pool != nil {
			defer pool.Close()
			opts = append(opts, queries.WithObserver(runlog.NewRecorder(runlog.NewPostgresRepo(pool, cfg.RequestTimeout), cfg.Mongo.Name)))
		}
	}

	runner := queries.NewRunner(repo, os.Stdout, opts...)
	rep, err := runner.RunAll(ctx)
	rep.Print(os.Stdout)
	if err != nil {
		return 1
	}
	return 0
}

// openRunLog returns nil when the run log database is unreachable; the
// queries still run without it.
func openRunLog(ctx context.Context, dsn string) *pgxpool.Pool {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Printf("run log disabled: cannot create db pool: %v", err)
		return nil
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Printf("run log disabled: cannot ping database (%s): %v", redactURI(dsn), err)
		return nil
	}
	return pool
}

func redactURI(uri string) string {
	const marker = "://"
	start := strings.Index(uri, marker)
	if start < 0 {
		return uri
	}
	start += len(marker)
	end := strings.Index(uri[start:], "@")
	if end < 0 {
		return uri
	}
	return uri[:start] + "***" + uri[start+end:]
}

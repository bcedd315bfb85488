// Command musicdsl-run is the dev-facing runner (§6): it reads a MusicDSL
// source file, executes it, and reports diagnostics with the process exit
// status the error taxonomy (§7) specifies.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"

	"github.com/Conceptual-Machines/musicdsl-go/config"
	"github.com/Conceptual-Machines/musicdsl-go/diag"
	"github.com/Conceptual-Machines/musicdsl-go/eval"
	"github.com/Conceptual-Machines/musicdsl-go/metrics"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: Could not load .env file: %v", err)
		log.Println("   Continuing with environment variables...")
	}

	cfg := &config.Config{
		SentryDSN: os.Getenv("SENTRY_DSN"),
		Verbose:   os.Getenv("MUSICDSL_VERBOSE") == "1",
	}
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			log.Printf("⚠️  Warning: could not initialize Sentry: %v", err)
			cfg.SentryDSN = ""
		}
	}
	sentryMetrics := metrics.NewSentryMetrics(cfg.SentryDSN != "")
	defer sentryMetrics.Flush(2 * time.Second)

	if len(os.Args) < 2 {
		log.Fatal("❌ ERROR: usage: musicdsl-run <source-file>")
	}
	path := os.Args[1]

	src, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("❌ ERROR: could not read %s: %v", path, err)
	}

	ctx := context.Background()

	if cfg.Verbose {
		log.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Printf("Running %s", path)
		log.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	}

	start := time.Now()
	in := eval.New(os.Stdout)
	runErr := in.Run(string(src))
	duration := time.Since(start)

	sentryMetrics.RecordEvalDuration(ctx, duration, 0, runErr)

	if runErr != nil {
		sentryMetrics.CaptureError(ctx, runErr)
		if d, ok := runErr.(diag.Error); ok {
			log.Printf("❌ %s", d.Error())
		} else {
			log.Printf("❌ %v", runErr)
		}
		os.Exit(diag.ExitStatus(runErr))
	}

	if cfg.Verbose {
		log.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Printf("✅ Done in %v", duration)
		log.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	}
}

package config

// Config holds process-wide configuration for running MusicDSL programs.
type Config struct {
	SentryDSN string // optional; metrics.NewSentryMetrics is a no-op without it
	Verbose   bool   // enable operational logging in cmd/musicdsl-run
}

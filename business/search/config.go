package search

import "time"

// Orchestrator tunables. Merge weights and timeouts are reference defaults,
// not protocol constants; pkg/config can override all of them from the
// environment.
const (
	defaultMinQueryLength  = 2
	defaultLimit           = 10
	defaultCandidateFactor = 3

	defaultExternalTimeout = 5 * time.Second
	defaultScanTimeout     = 3 * time.Second

	// The external index is trusted more per item, local coverage still
	// contributes when it comes back empty.
	defaultExternalWeight = 0.8
	defaultLocalWeight    = 0.6

	defaultTrendingCacheTTL = time.Minute
)

type Config struct {
	// MinQueryLength below which Search returns ErrQueryTooShort.
	MinQueryLength int
	// DefaultLimit is used when the caller passes limit <= 0.
	DefaultLimit int
	// CandidateFactor widens internal candidate fetches relative to limit.
	CandidateFactor int

	// ExternalTimeout bounds the combined external vector fetch.
	ExternalTimeout time.Duration
	// ScanTimeout bounds individual catalog scans.
	ScanTimeout time.Duration

	ExternalWeight float64
	LocalWeight    float64

	TrendingCacheTTL time.Duration
}

func DefaultConfig() Config {
	return Config{
		MinQueryLength:   defaultMinQueryLength,
		DefaultLimit:     defaultLimit,
		CandidateFactor:  defaultCandidateFactor,
		ExternalTimeout:  defaultExternalTimeout,
		ScanTimeout:      defaultScanTimeout,
		ExternalWeight:   defaultExternalWeight,
		LocalWeight:      defaultLocalWeight,
		TrendingCacheTTL: defaultTrendingCacheTTL,
	}
}

package explorer

import (
	"errors"
	"math"
	"regexp"

	pkgerrors "github.com/pkg/errors"

	"jaytaylor.com/acaana/domain"
)

var (
	DefaultMaxDepth               = 5
	DefaultKeywordWeightThreshold = 1.25
	DefaultPathScoreThreshold     = 35.0
	DefaultDivergent              = false
	DefaultSeedPattern            = `^GRT[0-9]+`
	DefaultMaxItems               = -1

	ErrInvalidConfig = errors.New("invalid explorer configuration")
	ErrStopRequested = errors.New("stop requested")
)

type Config struct {
	MaxDepth               int     // Degrees of separation of a complete path.
	KeywordWeightThreshold float64 // Keywords weighing less than this are never traversed.
	PathScoreThreshold     float64 // Complete paths scoring less than this are discarded.
	Divergent              bool    // Forbid topically related keywords within a path.
	SeedPattern            string  // Regular expression identifying seed (internal) authors.
	Placeholder            string  // Reserved "no value" token.
	MaxItems               int     // Maximum number of queued seeds to process, <= 0 means unlimited.
}

func NewConfig() *Config {
	cfg := &Config{
		MaxDepth:               DefaultMaxDepth,
		KeywordWeightThreshold: DefaultKeywordWeightThreshold,
		PathScoreThreshold:     DefaultPathScoreThreshold,
		Divergent:              DefaultDivergent,
		SeedPattern:            DefaultSeedPattern,
		Placeholder:            domain.Placeholder,
		MaxItems:               DefaultMaxItems,
	}
	return cfg
}

// Validate rejects configurations which could only ever produce empty
// results.
func (cfg *Config) Validate() error {
	if cfg.MaxDepth <= 0 {
		return pkgerrors.Wrapf(ErrInvalidConfig, "max depth must be positive but was %v", cfg.MaxDepth)
	}
	if math.IsNaN(cfg.KeywordWeightThreshold) || math.IsInf(cfg.KeywordWeightThreshold, 1) || cfg.KeywordWeightThreshold < 0 {
		return pkgerrors.Wrapf(ErrInvalidConfig, "keyword weight threshold must be a non-negative number but was %v", cfg.KeywordWeightThreshold)
	}
	if math.IsNaN(cfg.PathScoreThreshold) || math.IsInf(cfg.PathScoreThreshold, 1) || cfg.PathScoreThreshold < 0 {
		return pkgerrors.Wrapf(ErrInvalidConfig, "path score threshold must be a non-negative number but was %v", cfg.PathScoreThreshold)
	}
	if _, err := regexp.Compile(cfg.SeedPattern); err != nil {
		return pkgerrors.Wrapf(ErrInvalidConfig, "seed pattern %q: %s", cfg.SeedPattern, err)
	}
	return nil
}

// SeedPredicate returns a function reporting whether an author is a seed
// author.  An empty pattern matches nobody.
func (cfg *Config) SeedPredicate() (func(author string) bool, error) {
	if len(cfg.SeedPattern) == 0 {
		return func(_ string) bool { return false }, nil
	}
	expr, err := regexp.Compile(cfg.SeedPattern)
	if err != nil {
		return nil, pkgerrors.Wrapf(ErrInvalidConfig, "seed pattern %q: %s", cfg.SeedPattern, err)
	}
	return expr.MatchString, nil
}

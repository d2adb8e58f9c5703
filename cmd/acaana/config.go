package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"

	"jaytaylor.com/acaana/cluster"
	"jaytaylor.com/acaana/explorer"
)

var DefaultConfigSearchPaths = []string{
	filepath.Join(os.Getenv("HOME"), ".acaana.toml"),
	filepath.Join(os.Getenv("HOME"), ".config", "acaana.toml"),
}

// Config is the TOML configuration struct.  When a ~/.acaana.toml or
// ~/.config/acaana.toml file exists, the values contained therein will
// override the compiled-in defaults.  Command-line flags take precedence over
// both.
type Config struct {
	Driver  string
	DB      string
	Quiet   bool
	Verbose bool

	AuthorKeywords string `toml:"author_keywords"`
	KeywordAuthors string `toml:"keyword_authors"`
	Annotations    string
	Out            string

	MaxDepth               int      `toml:"max_depth"`
	KeywordWeightThreshold *float64 `toml:"keyword_weight_threshold"`
	PathScoreThreshold     *float64 `toml:"path_score_threshold"`
	Divergent              bool
	SeedPattern            string `toml:"seed_pattern"`

	ClusterThreshold  *int `toml:"cluster_threshold"`
	ClusterIterations int  `toml:"cluster_iterations"`

	File string `toml:"-"` // Location the configuration was loaded from.
}

func NewConfig() *Config {
	return &Config{}
}

// Do locates, parses and applies the first configuration file found in
// DefaultConfigSearchPaths.  Not finding one is not an error.
func (config *Config) Do() error {
	file, err := findConfigFile()
	if err != nil {
		return err
	}
	if len(file) == 0 {
		return nil
	}
	if _, err := toml.DecodeFile(file, config); err != nil {
		return err
	}
	config.File = file
	log.WithField("file", file).Debug("Applying configuration")
	config.Apply()
	return nil
}

func (config *Config) Apply() {
	if len(config.Driver) > 0 {
		DBDriver = config.Driver
	}
	if len(config.DB) > 0 {
		DBFile = config.DB
	}
	if config.Quiet {
		Quiet = true
	}
	if config.Verbose {
		Verbose = true
	}
	if len(config.AuthorKeywords) > 0 {
		AuthorKeywordsFile = config.AuthorKeywords
	}
	if len(config.KeywordAuthors) > 0 {
		KeywordAuthorsFile = config.KeywordAuthors
	}
	if len(config.Annotations) > 0 {
		AnnotationsFile = config.Annotations
	}
	if len(config.Out) > 0 {
		OutDir = config.Out
	}
	if config.MaxDepth != 0 {
		explorer.DefaultMaxDepth = config.MaxDepth
	}
	if config.KeywordWeightThreshold != nil {
		explorer.DefaultKeywordWeightThreshold = *config.KeywordWeightThreshold
	}
	if config.PathScoreThreshold != nil {
		explorer.DefaultPathScoreThreshold = *config.PathScoreThreshold
	}
	if config.Divergent {
		explorer.DefaultDivergent = true
	}
	if len(config.SeedPattern) > 0 {
		explorer.DefaultSeedPattern = config.SeedPattern
	}
	if config.ClusterThreshold != nil {
		cluster.DefaultThreshold = *config.ClusterThreshold
	}
	if config.ClusterIterations != 0 {
		cluster.DefaultIterations = config.ClusterIterations
	}
}

// findConfigFile returns the first existing file in
// DefaultConfigSearchPaths.
//
// If no config file is found, ("", nil) is returned.
func findConfigFile() (string, error) {
	for _, path := range DefaultConfigSearchPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if os.IsNotExist(err) {
			continue
		} else if err != nil {
			return "", err
		}
	}
	return "", nil
}

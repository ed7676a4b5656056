package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fletchka/harvest"
	"gopkg.in/yaml.v3"
)

// Config is the YAML run configuration: a team ID, an output path, and
// the sources to scrape.
type Config struct {
	TeamID  string           `yaml:"team_id"`
	Output  string           `yaml:"output"`
	Sources []harvest.Source `yaml:"sources"`
}

// configFile mirrors Config with delays as human-readable strings
// ("2s", "500ms") instead of nanosecond integers.
type configFile struct {
	TeamID  string         `yaml:"team_id"`
	Output  string         `yaml:"output"`
	Sources []sourceConfig `yaml:"sources"`
}

type sourceConfig struct {
	URL          string `yaml:"url"`
	Type         string `yaml:"source_type"`
	MaxArticles  int    `yaml:"max_articles"`
	Delay        string `yaml:"delay"`
	ChunkSize    int    `yaml:"chunk_size"`
	ChunkOverlap int    `yaml:"chunk_overlap"`
	Title        string `yaml:"title"`
	Author       string `yaml:"author"`
}

// LoadConfig reads and validates a YAML run configuration.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if file.TeamID == "" {
		return nil, harvest.Errorf(harvest.EINVALID, "config team_id required")
	}
	if len(file.Sources) == 0 {
		return nil, harvest.Errorf(harvest.EINVALID, "config needs at least one source")
	}

	cfg := &Config{TeamID: file.TeamID, Output: file.Output}
	for i, sc := range file.Sources {
		src := harvest.Source{
			URL:          sc.URL,
			Type:         harvest.SourceType(sc.Type),
			MaxArticles:  sc.MaxArticles,
			ChunkSize:    sc.ChunkSize,
			ChunkOverlap: sc.ChunkOverlap,
			Title:        sc.Title,
			Author:       sc.Author,
		}
		if sc.Delay != "" {
			d, err := time.ParseDuration(sc.Delay)
			if err != nil {
				return nil, harvest.Errorf(harvest.EINVALID, "source %d: bad delay %q", i+1, sc.Delay)
			}
			src.Delay = d
		}
		src = src.WithDefaults()
		if err := src.Validate(); err != nil {
			return nil, fmt.Errorf("source %d: %w", i+1, err)
		}
		cfg.Sources = append(cfg.Sources, src)
	}

	return cfg, nil
}

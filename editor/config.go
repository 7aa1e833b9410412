// CLAUDE:SUMMARY Editor configuration — listen address, page title, journal database, seed elements; YAML loader with validation.
package editor

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/protoboard/dbopen"
	"github.com/hazyhaar/protoboard/element"
)

// Config holds all editor configuration.
type Config struct {
	Addr  string `yaml:"addr"`
	Title string `yaml:"title"`

	// JournalPath is the SQLite file recording user actions. The default
	// keeps the journal in memory.
	JournalPath      string        `yaml:"journal_path"`
	JournalRetention time.Duration `yaml:"journal_retention"`

	// MCP mounts the MCP tool endpoint at /mcp.
	MCP bool `yaml:"mcp"`

	// Seed is the element list a session starts from. Empty means the
	// built-in seed.
	Seed []element.Element `yaml:"seed"`
}

// DefaultTitle is the page heading.
const DefaultTitle = "Dynamic GUI Prototype"

func (c *Config) defaults() {
	if c.Addr == "" {
		c.Addr = ":8050"
	}
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.JournalPath == "" {
		c.JournalPath = dbopen.Memory
	}
	if len(c.Seed) == 0 {
		c.Seed = element.Seed()
	}
}

// LoadConfigFile reads a YAML config file. Seed labels are reduced to plain
// text and the seed is validated.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if len(cfg.Seed) > 0 {
		cfg.Seed = element.SanitizeLabels(cfg.Seed)
		if err := element.ValidateList(cfg.Seed); err != nil {
			return nil, fmt.Errorf("config %s: seed: %w", path, err)
		}
	}
	return cfg, nil
}

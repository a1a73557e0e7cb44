package info

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Mode selects function scanner implementation
type Mode string

const (
	// ModeText scans with an explicit brace counter
	ModeText Mode = "text"
	// ModeSyntax scans with a tree-sitter grammar
	ModeSyntax Mode = "syntax"
)

// Config represents analysis configuration
type Config struct {
	Mode        Mode     `yaml:"mode,omitempty"`
	Dialect     *Dialect `yaml:"dialect,omitempty"`
	Concurrency int      `yaml:"concurrency,omitempty"` // Max parallel dependency resolutions
	CacheSize   int      `yaml:"cacheSize,omitempty"`   // Scanned units kept by resolver
}

// Dialect describes the source shapes recognized by the scanner and the extractor
type Dialect struct {
	Keyword       string   `yaml:"keyword,omitempty"`       // Function definition keyword
	Loaders       []string `yaml:"loaders,omitempty"`       // Functions binding an alias to a module, i.e. loadModule("billing")
	SelfReceivers []string `yaml:"selfReceivers,omitempty"` // Receivers denoting the current unit, i.e. $this
	Accessors     []string `yaml:"accessors,omitempty"`     // Member access operators
	Sigil         string   `yaml:"sigil,omitempty"`         // Variable prefix
}

func DefaultDialect() *Dialect {
	return &Dialect{
		Keyword:       "function",
		Loaders:       []string{"loadModule", "load_engine"},
		SelfReceivers: []string{"$this", "self", "static"},
		Accessors:     []string{"->", "::"},
		Sigil:         "$",
	}
}

func DefaultConfig() *Config {
	return &Config{
		Mode:        ModeText,
		Dialect:     DefaultDialect(),
		Concurrency: 8,
		CacheSize:   256,
	}
}

// Init fills unset values with defaults
func (c *Config) Init() {
	defaults := DefaultConfig()
	if c.Mode == "" {
		c.Mode = defaults.Mode
	}
	if c.Dialect == nil {
		c.Dialect = defaults.Dialect
	}
	c.Dialect.Init()
	if c.Concurrency <= 0 {
		c.Concurrency = defaults.Concurrency
	}
	if c.CacheSize <= 0 {
		c.CacheSize = defaults.CacheSize
	}
}

// Init fills unset dialect values with defaults
func (d *Dialect) Init() {
	defaults := DefaultDialect()
	if d.Keyword == "" {
		d.Keyword = defaults.Keyword
	}
	if len(d.Loaders) == 0 {
		d.Loaders = defaults.Loaders
	}
	if len(d.SelfReceivers) == 0 {
		d.SelfReceivers = defaults.SelfReceivers
	}
	if len(d.Accessors) == 0 {
		d.Accessors = defaults.Accessors
	}
	if d.Sigil == "" {
		d.Sigil = defaults.Sigil
	}
}

// Validate checks config
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeText, ModeSyntax:
	default:
		return fmt.Errorf("unsupported mode: %s", c.Mode)
	}
	if c.Dialect == nil {
		return fmt.Errorf("dialect was empty")
	}
	return nil
}

// LoadConfig loads YAML config from URL, unset values are defaulted
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", URL, err)
	}
	config := &Config{}
	if err = yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	config.Init()
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

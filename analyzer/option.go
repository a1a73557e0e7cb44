package analyzer

import (
	"log/slog"

	"github.com/viant/callflow/inspector"
	"github.com/viant/callflow/inspector/info"
)

type Option func(*Analyzer)

// WithConfig sets analysis configuration
func WithConfig(config *info.Config) Option {
	return func(a *Analyzer) {
		a.config = config
	}
}

// WithInspector sets the function scanner, by default it is created from config mode
func WithInspector(insp inspector.Inspector) Option {
	return func(a *Analyzer) {
		a.inspector = insp
	}
}

// WithDialect sets source shapes recognized by scanner and extractor
func WithDialect(dialect *info.Dialect) Option {
	return func(a *Analyzer) {
		a.dialect = dialect
	}
}

// WithConcurrency sets max parallel dependency resolutions
func WithConcurrency(concurrency int) Option {
	return func(a *Analyzer) {
		a.concurrency = concurrency
	}
}

// WithCacheSize sets number of scanned module units kept by resolver
func WithCacheSize(size int) Option {
	return func(a *Analyzer) {
		a.cacheSize = size
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

package headingdocx

import "log/slog"

// Options holds configuration for partitioning and logging.
type Options struct {
	// Keep tables and other non-paragraph body elements inside sections
	includeTables bool

	// Destination for progress records; nil means slog.Default()
	logger *slog.Logger
}

// defaultOptions returns the default options.
func defaultOptions() Options {
	return Options{
		includeTables: false,
		logger:        nil,
	}
}

// clone creates a copy of Options.
func (o Options) clone() Options {
	return Options{
		includeTables: o.includeTables,
		logger:        o.logger,
	}
}

func (o Options) log() *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return slog.Default()
}

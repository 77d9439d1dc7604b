// Package container provides dependency injection for the swift-csv application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/swift-csv/internal/batch"
	"fjacquet/swift-csv/internal/bicmap"
	"fjacquet/swift-csv/internal/common"
	"fjacquet/swift-csv/internal/config"
	"fjacquet/swift-csv/internal/extractor"
	"fjacquet/swift-csv/internal/factory"
	"fjacquet/swift-csv/internal/logging"
	"fjacquet/swift-csv/internal/metrics"
	"fjacquet/swift-csv/internal/models"
	"fjacquet/swift-csv/internal/pdfparser"
)

// Option adjusts how the container builds its dependencies.
type Option func(*options)

type options struct {
	logger logging.Logger
	pdf    pdfparser.PDFExtractor
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithPDFExtractor replaces the default PDF text reader.
func WithPDFExtractor(p pdfparser.PDFExtractor) Option {
	return func(o *options) { o.pdf = p }
}

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation: all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	format    common.Format
	direction models.Direction

	resolver  *bicmap.Resolver
	registry  *factory.Registry
	metrics   *metrics.Metrics
	extractor *extractor.Extractor
	writer    *common.RecordWriter
	runner    *batch.Runner
}

// NewContainer creates and wires all application dependencies.
// The BIC table is located lazily, on the first lookup.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	format, err := common.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	direction, err := models.ParseDirection(cfg.Extraction.Direction)
	if err != nil {
		return nil, err
	}

	logger := o.logger
	if logger == nil {
		logger = config.NewLogger(cfg)
	}

	resolver := bicmap.NewResolver(logger, cfg.BIC.File, cfg.BIC.DataDir)
	registry := factory.NewRegistry(logger, resolver, factory.Options{
		TrackAuxiliaryFields: cfg.Extraction.TrackAuxiliaryFields,
	})
	m := metrics.New()

	extractorOpts := []extractor.Option{
		extractor.WithDirection(direction),
		extractor.WithMetrics(m),
	}
	if o.pdf != nil {
		extractorOpts = append(extractorOpts, extractor.WithPDFExtractor(o.pdf))
	}
	ext := extractor.New(logger, registry, resolver, extractorOpts...)

	logger.Debug("Container initialized",
		logging.Field{Key: logging.FieldDirection, Value: string(direction)},
		logging.Field{Key: logging.FieldFormat, Value: string(format)},
		logging.Field{Key: logging.FieldWorkers, Value: cfg.Batch.Workers})

	return &Container{
		logger:    logger,
		config:    cfg,
		format:    format,
		direction: direction,
		resolver:  resolver,
		registry:  registry,
		metrics:   m,
		extractor: ext,
		writer:    common.NewRecordWriter(logger, cfg.Delimiter()),
		runner:    batch.NewRunner(logger, ext, cfg.Batch.Workers),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// Format returns the configured output format.
func (c *Container) Format() common.Format {
	return c.format
}

// Direction returns the configured transfer direction.
func (c *Container) Direction() models.Direction {
	return c.direction
}

// GetResolver returns the BIC table resolver.
func (c *Container) GetResolver() *bicmap.Resolver {
	return c.resolver
}

// GetRegistry returns the per-type extractor registry.
func (c *Container) GetRegistry() *factory.Registry {
	return c.registry
}

// GetMetrics returns the run metrics.
func (c *Container) GetMetrics() *metrics.Metrics {
	return c.metrics
}

// GetExtractor returns the document extractor.
func (c *Container) GetExtractor() *extractor.Extractor {
	return c.extractor
}

// GetWriter returns the record writer.
func (c *Container) GetWriter() *common.RecordWriter {
	return c.writer
}

// GetRunner returns the batch runner.
func (c *Container) GetRunner() *batch.Runner {
	return c.runner
}

// Close writes the metrics textfile when one is configured.
func (c *Container) Close() error {
	if path := c.config.Metrics.Textfile; path != "" {
		if err := c.metrics.WriteTextfile(path); err != nil {
			return fmt.Errorf("failed to write metrics to %s: %w", path, err)
		}
		c.logger.Debug("Wrote metrics textfile",
			logging.Field{Key: logging.FieldFile, Value: path})
	}
	return nil
}

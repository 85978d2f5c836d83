package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
	"github.com/custodia-labs/frmr-oscal/internal/core/ports/driven"
	"github.com/custodia-labs/frmr-oscal/internal/core/ports/driving"
	"github.com/custodia-labs/frmr-oscal/internal/logger"
)

// Ensure PipelineService implements the interface.
var _ driving.Pipeline = (*PipelineService)(nil)

const tracerName = "frmr-oscal.pipeline"

// PipelineService runs a publication end to end. Documents are processed
// one at a time and every document is parsed before anything is built.
type PipelineService struct {
	connector driven.Connector
	registry  driven.ParserRegistry
	publisher *Publisher
	ledger    driven.PublicationLedger
	retry     domain.RetrySettings
	now       func() time.Time
	tracer    trace.Tracer
}

// PipelineOption configures a PipelineService.
type PipelineOption func(*PipelineService)

// WithRetry sets the retry policy for transient retrieval failures.
func WithRetry(settings domain.RetrySettings) PipelineOption {
	return func(p *PipelineService) { p.retry = settings }
}

// WithLedger records every published artifact in ledger.
func WithLedger(ledger driven.PublicationLedger) PipelineOption {
	return func(p *PipelineService) { p.ledger = ledger }
}

// WithPipelineClock sets the time source for the fallback version and ledger entries.
func WithPipelineClock(now func() time.Time) PipelineOption {
	return func(p *PipelineService) { p.now = now }
}

// NewPipeline creates a pipeline reading from connector and publishing
// through publisher.
func NewPipeline(
	connector driven.Connector,
	registry driven.ParserRegistry,
	publisher *Publisher,
	opts ...PipelineOption,
) *PipelineService {
	p := &PipelineService{
		connector: connector,
		registry:  registry,
		publisher: publisher,
		retry:     domain.DefaultSettings().Retry,
		now:       time.Now,
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the pipeline. Documents that cannot be fetched or parsed
// are skipped and reported. ErrNoControls is returned, with nothing
// written, when no document yields a control.
func (p *PipelineService) Run(ctx context.Context) (report *domain.RunReport, err error) {
	ctx, span := p.tracer.Start(ctx, "frmr-oscal.pipeline.run", trace.WithAttributes(
		attribute.String("connector", p.connector.Type()),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	logger.Section("Fetch")
	names, err := p.connector.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	if len(names) == 0 {
		return nil, domain.ErrNoDocuments
	}
	logger.Info("found %d document(s)", len(names))

	report = &domain.RunReport{GroupCounts: make(map[string]int)}
	agg := NewAggregator()
	seen := domain.NewIDSet()

	for _, name := range names {
		if err := p.process(ctx, name, agg, seen); err != nil {
			logger.L().Warn("document skipped", zap.String("document", name), zap.Error(err))
			report.Skipped = append(report.Skipped, domain.SkippedDocument{Name: name, Reason: err.Error()})
			continue
		}
		report.Documents++
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}

	set := agg.ControlSet(p.now())
	if set.Len() == 0 {
		return report, domain.ErrNoControls
	}

	report.Version = set.Version
	report.Controls = set.Len()
	for _, rec := range set.Records {
		report.GroupCounts[rec.GroupID]++
	}
	span.SetAttributes(attribute.String("version", set.Version), attribute.Int("controls", set.Len()))

	logger.Section("Publish")
	report.Location = p.publisher.store.Location(set.Version)
	report.Artifacts, err = p.publisher.Publish(ctx, set)
	if err != nil {
		return report, err
	}

	if err := p.record(ctx, set.Version, report.Artifacts); err != nil {
		logger.L().Warn("publication not recorded", zap.String("version", set.Version), zap.Error(err))
	}
	return report, nil
}

func (p *PipelineService) process(ctx context.Context, name string, agg *Aggregator, seen domain.IDSet) error {
	ctx, span := p.tracer.Start(ctx, "frmr-oscal.pipeline.document", trace.WithAttributes(
		attribute.String("document", name),
	))
	defer span.End()

	result := p.fetch(ctx, name)
	if err := result.Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	doc, err := p.registry.Inspect(result.Document)
	if err != nil {
		return err
	}
	logger.Info("%s: %s format, version %q", name, doc.Dialect, doc.Version)

	parsed, err := p.registry.Parse(ctx, doc, seen)
	if err != nil {
		return err
	}
	logger.Info("%s: %d control(s), %d skipped", name, len(parsed.Records), parsed.Skipped)

	agg.Add(doc.Version, parsed)
	return nil
}

// fetch retrieves a document, retrying transient failures with
// exponential backoff.
func (p *PipelineService) fetch(ctx context.Context, name string) domain.FetchResult {
	base := p.retry.Backoff
	if base <= 0 {
		base = time.Millisecond
	}
	attempts := p.retry.Attempts
	if attempts < 0 {
		attempts = 0
	}
	backoff := retry.WithMaxRetries(uint64(attempts), retry.NewExponential(base))

	var result domain.FetchResult
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		result = p.connector.Fetch(ctx, name)
		if result.Retryable() {
			logger.Debug("%s: %v, retrying", name, result.Failure)
			return retry.RetryableError(result.Failure)
		}
		return nil
	})
	if err != nil && result.Failure == nil && !result.OK() {
		return domain.FetchFailed(domain.FailureTransient, "fetch interrupted", err)
	}
	return result
}

func (p *PipelineService) record(ctx context.Context, version string, artifacts []domain.ArtifactReport) error {
	if p.ledger == nil {
		return nil
	}
	now := p.now()
	records := make([]domain.PublicationRecord, 0, len(artifacts))
	for _, a := range artifacts {
		if a.Status == "" {
			continue
		}
		records = append(records, domain.PublicationRecord{
			Version:      version,
			Artifact:     a.Name,
			UUID:         a.UUID,
			ContentHash:  a.ContentHash,
			Published:    a.Timestamps.Published,
			LastModified: a.Timestamps.LastModified,
			Status:       a.Status,
			RecordedAt:   now,
		})
	}
	return p.ledger.Record(ctx, records)
}

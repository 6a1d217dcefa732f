package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/caresync/hms-api/internal/model"
	"github.com/caresync/hms-api/internal/repository"
	"github.com/caresync/hms-api/pkg/event"
	"github.com/caresync/hms-api/pkg/logger"
	"github.com/caresync/hms-api/pkg/messaging"
	"github.com/caresync/hms-api/pkg/metrics"
)

// Sink stages every dispatched domain event in the outbox table. It is
// subscribed to all event types; the worker drains the table to the
// broker out of band.
type Sink struct {
	outboxRepo repository.OutboxRepository
}

func NewSink(outboxRepo repository.OutboxRepository) *Sink {
	return &Sink{outboxRepo: outboxRepo}
}

// SubscribeAll registers the sink for every event type.
func (s *Sink) SubscribeAll(d *event.Dispatcher) {
	for _, typ := range []event.Type{
		event.TypeAppointmentCreated,
		event.TypeAppointmentDecided,
		event.TypeLabResultRecorded,
		event.TypePrescriptionDispatched,
	} {
		d.Subscribe(typ, s)
	}
}

func (s *Sink) Handle(ctx context.Context, evt event.Event) error {
	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return err
	}
	return s.outboxRepo.Create(ctx, &model.OutboxEvent{
		ID:        evt.ID,
		EventType: string(evt.Type),
		Payload:   payload,
		Status:    model.OutboxStatusPending,
	})
}

const channelPrefix = "hms.events."

// Processor drains pending outbox rows to the message broker. Run by
// the worker binary on a fixed interval; publication is best-effort
// and a failed row is marked failed rather than retried forever.
type Processor struct {
	outboxRepo repository.OutboxRepository
	broker     messaging.Broker
	metrics    *metrics.Metrics
	logger     *logger.Logger
	batchSize  int
	interval   time.Duration
}

func NewProcessor(
	outboxRepo repository.OutboxRepository,
	broker messaging.Broker,
	m *metrics.Metrics,
	log *logger.Logger,
	batchSize int,
	interval time.Duration,
) *Processor {
	if batchSize <= 0 {
		batchSize = 100
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Processor{
		outboxRepo: outboxRepo,
		broker:     broker,
		metrics:    m,
		logger:     log,
		batchSize:  batchSize,
		interval:   interval,
	}
}

// Run processes batches until the context is cancelled.
func (p *Processor) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := p.ProcessBatch(ctx); err != nil {
				p.logger.Error(err, "outbox batch failed")
			}
		}
	}
}

// ProcessBatch publishes one batch of pending events.
func (p *Processor) ProcessBatch(ctx context.Context) error {
	events, err := p.outboxRepo.ListPending(ctx, p.batchSize)
	if err != nil {
		return err
	}

	for _, evt := range events {
		channel := channelPrefix + evt.EventType
		if err := p.broker.Publish(ctx, channel, evt.Payload); err != nil {
			p.logger.Error(err, "failed to publish outbox event", "event_id", evt.ID.String())
			if markErr := p.outboxRepo.MarkFailed(ctx, evt.ID, err.Error()); markErr != nil {
				p.logger.Error(markErr, "failed to mark outbox event failed", "event_id", evt.ID.String())
			}
			p.metrics.OutboxProcessed.WithLabelValues("failed").Inc()
			continue
		}
		if err := p.outboxRepo.MarkPublished(ctx, evt.ID); err != nil {
			p.logger.Error(err, "failed to mark outbox event published", "event_id", evt.ID.String())
			continue
		}
		p.metrics.OutboxProcessed.WithLabelValues("published").Inc()
	}

	pending, err := p.outboxRepo.CountPending(ctx)
	if err == nil {
		p.metrics.OutboxLag.Set(float64(pending))
	}
	return nil
}

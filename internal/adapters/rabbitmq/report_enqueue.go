package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/swami086/gentle-space-realty-sub007/internal/contextkeys"
	"github.com/swami086/gentle-space-realty-sub007/internal/contracts"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/port"
	"github.com/swami086/gentle-space-realty-sub007/pkg/rabbitmq/rabbitmq_producer"
)

const (
	extractionReportEvent = "ExtractionReportEvent"
	importReportEvent     = "ImportReportEvent"
	eventVersion          = "1.0.0"

	publishTimeout = 10 * time.Second
)

// ReportEnqueueAdapter публикует события-отчеты в обменник сервиса.
// Каждое событие перед отправкой проверяется по его JSON-схеме:
// сломанный контракт должен падать у нас, а не у потребителя.
type ReportEnqueueAdapter struct {
	producer         *rabbitmq_producer.Publisher
	runRoutingKey    string
	importRoutingKey string
}

func NewReportEnqueueAdapter(producer *rabbitmq_producer.Publisher, runRoutingKey, importRoutingKey string) (*ReportEnqueueAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if runRoutingKey == "" || importRoutingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routing keys cannot be empty")
	}
	return &ReportEnqueueAdapter{
		producer:         producer,
		runRoutingKey:    runRoutingKey,
		importRoutingKey: importRoutingKey,
	}, nil
}

func (a *ReportEnqueueAdapter) ReportRun(ctx context.Context, report domain.ExtractionReport) error {
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to encode run report: %w", err)
	}
	return a.publish(ctx, extractionReportEvent, a.runRoutingKey, body)
}

func (a *ReportEnqueueAdapter) ReportImport(ctx context.Context, report domain.ImportReport) error {
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to encode import report: %w", err)
	}
	return a.publish(ctx, importReportEvent, a.importRoutingKey, body)
}

func (a *ReportEnqueueAdapter) publish(ctx context.Context, eventType, routingKey string, body []byte) error {
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":   "ReportEnqueueAdapter",
		"routing_key": routingKey,
		"event_type":  eventType,
	})

	if err := contracts.ValidateEvent(eventType, eventVersion, body); err != nil {
		adapterLogger.Error("Report does not match its event schema", err, nil)
		return fmt.Errorf("rabbitmq adapter: event failed schema validation: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent, // Для сохранения сообщений при перезапуске брокера
		Timestamp:    time.Now(),
		Headers: amqp.Table{
			"x-event-type":    eventType,
			"x-event-version": eventVersion,
		},
	}

	traceID := contextkeys.TraceIDFromContext(ctx)
	if traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	// Таймаут на публикацию, если контекст его не предоставляет
	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish report event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish %s: %w", eventType, err)
	}

	adapterLogger.Debug("Report event published", nil)
	return nil
}

package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go-ems/internal/events"
	"go-ems/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	maxHandleAttempts = 3
	dateLayout        = "2006-01-02"
)

// MessageReader is the part of *kafkago.Reader the consumer loop needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// MessageWriter receives messages parked on the dead-letter topic.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// LeaveDays applies approved and cancelled leave to attendance.
type LeaveDays interface {
	MarkLeaveDays(ctx context.Context, companyID, employeeID string, from, to time.Time, remarks string) (int, error)
	UnmarkLeaveDays(ctx context.Context, companyID, employeeID string, from, to time.Time) (int, error)
}

// ConsumeLeaveLifecycle marks approved leave as LEAVE attendance days and clears
// them again when the leave is cancelled. Other event types are committed and skipped.
// A message that still fails after maxHandleAttempts is parked on deadLetters
// before its offset is committed.
func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader MessageReader,
	deadLetters MessageWriter,
	days LeaveDays,
	logger *zap.Logger,
	retryBackoff time.Duration,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.LeaveEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave event failed", zap.Int64("offset", msg.Offset), zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		var handle func(context.Context, time.Time, time.Time) error
		switch event.EventType {
		case events.LeaveApprovedEventType:
			handle = func(ctx context.Context, from, to time.Time) error {
				return handleLeaveApproved(ctx, days, event, from, to, log)
			}
		case events.LeaveCancelledEventType:
			handle = func(ctx context.Context, from, to time.Time) error {
				return handleLeaveCancelled(ctx, days, event, from, to, log)
			}
		default:
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		from, to, err := leaveRange(event)
		if err != nil {
			log.Error("invalid leave range in event", zap.String("leave_id", event.LeaveID), zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		hctx := ctx
		if event.RequestID != "" {
			hctx = contextutil.WithRequestID(ctx, event.RequestID)
		}
		err = retry(hctx, handle, from, to, event, retryBackoff, log)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("leave event gave up, parking on dead-letter topic",
				zap.String("event_type", event.EventType),
				zap.String("leave_id", event.LeaveID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			if !park(ctx, deadLetters, msg, err, retryBackoff, log) {
				log.Info("leave lifecycle consumer stopped")
				return
			}
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave lifecycle message failed", zap.Error(err))
		}
	}
}

func retry(
	ctx context.Context,
	handle func(context.Context, time.Time, time.Time) error,
	from, to time.Time,
	event events.LeaveEvent,
	backoff time.Duration,
	log *zap.Logger,
) error {
	var err error
	for attempt := 1; attempt <= maxHandleAttempts; attempt++ {
		err = handle(ctx, from, to)
		if err == nil || ctx.Err() != nil {
			return err
		}
		log.Warn("apply leave event failed, retrying",
			zap.String("event_type", event.EventType),
			zap.String("leave_id", event.LeaveID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff * time.Duration(attempt)):
		}
	}
	return err
}

// park keeps trying until the message is on the dead-letter topic, so the
// offset is never committed past an event that was neither applied nor parked.
// It returns false only when ctx ends first.
func park(ctx context.Context, w MessageWriter, msg kafkago.Message, cause error, backoff time.Duration, log *zap.Logger) bool {
	headers := append([]kafkago.Header{}, msg.Headers...)
	headers = append(headers,
		kafkago.Header{Key: "dlq_reason", Value: []byte(cause.Error())},
		kafkago.Header{Key: "dlq_source_topic", Value: []byte(msg.Topic)},
		kafkago.Header{Key: "dlq_source_offset", Value: []byte(strconv.FormatInt(msg.Offset, 10))},
	)
	parked := kafkago.Message{Key: msg.Key, Value: msg.Value, Headers: headers}

	for attempt := 1; ; attempt++ {
		err := w.WriteMessages(ctx, parked)
		if err == nil {
			return true
		}
		if ctx.Err() != nil {
			return false
		}
		log.Error("park leave event failed", zap.Int("attempt", attempt), zap.Int64("offset", msg.Offset), zap.Error(err))
		select {
		case <-ctx.Done():
			return false
		case <-time.After(backoff):
		}
	}
}

func leaveRange(event events.LeaveEvent) (time.Time, time.Time, error) {
	from, err := time.Parse(dateLayout, event.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse start_date %q: %w", event.StartDate, err)
	}
	to, err := time.Parse(dateLayout, event.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse end_date %q: %w", event.EndDate, err)
	}
	return from, to, nil
}

func handleLeaveApproved(ctx context.Context, days LeaveDays, event events.LeaveEvent, from, to time.Time, log *zap.Logger) error {
	inserted, err := days.MarkLeaveDays(ctx, event.CompanyID, event.EmployeeID, from, to, event.LeaveType+" leave")
	if err != nil {
		return err
	}

	log.Info("leave days marked from leave_approved event",
		zap.String("leave_id", event.LeaveID),
		zap.String("employee_id", event.EmployeeID),
		zap.Int("inserted", inserted),
	)
	return nil
}

func handleLeaveCancelled(ctx context.Context, days LeaveDays, event events.LeaveEvent, from, to time.Time, log *zap.Logger) error {
	removed, err := days.UnmarkLeaveDays(ctx, event.CompanyID, event.EmployeeID, from, to)
	if err != nil {
		return err
	}

	log.Info("leave days cleared from leave_cancelled event",
		zap.String("leave_id", event.LeaveID),
		zap.String("employee_id", event.EmployeeID),
		zap.Int("removed", removed),
	)
	return nil
}

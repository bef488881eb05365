package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-ems/internal/attendance"
	"go-ems/internal/config"
	"go-ems/internal/events"
	"go-ems/internal/messaging/kafka/consumer"
	"go-ems/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const consumerRetryBackoff = 2 * time.Second

// RunConsumer applies leave lifecycle events to attendance until SIGINT or SIGTERM.
// Events that keep failing are parked on the leave dead-letter topic.
func RunConsumer(cfg config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	if err := cfg.RequireKafka(); err != nil {
		return err
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, logger)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	attendanceRepo := attendance.NewRepository(gormDB)
	attendanceService := attendance.NewService(sqlDB, attendanceRepo, logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          events.LeaveLifecycleTopic,
		GroupID:        cfg.Kafka.ConsumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	deadLetters := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.Kafka.Broker),
		Topic:                  events.LeaveDeadLetterTopic,
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	defer deadLetters.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		consumer.ConsumeLeaveLifecycle(ctx, reader, deadLetters, attendanceService, logger, consumerRetryBackoff)
		close(done)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("consumer shutting down")
	cancel()
	<-done

	return nil
}

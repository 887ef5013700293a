package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/microservices-console/config"
	"github.com/oksasatya/microservices-console/pkg/events"
	"github.com/oksasatya/microservices-console/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEventsQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	logger := helpers.NewLogger(cfg.AppName+"-event-worker", cfg.Env)

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQEventsQueue, 16)
	if err != nil {
		log.Fatalf("amqp: %v", err)
	}
	defer consumer.Close()

	msgs, err := consumer.Consume("")
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			handle(logger, msg)
		}
		close(done)
	}()

	helpers.LogInfo(logger, "event worker listening", logrus.Fields{"queue": cfg.RabbitMQEventsQueue})
	select {
	case <-stop:
	case <-done:
		logger.Warn("delivery channel closed")
	}
	logger.Info("shutting down...")
	consumer.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

// handle writes one audit line per intent. Undecodable messages are dropped,
// never requeued.
func handle(logger *logrus.Logger, msg amqp.Delivery) {
	in, err := events.Decode(msg.Body)
	if err != nil {
		fields := logrus.Fields{"message_id": msg.MessageId}
		if errors.Is(err, events.ErrUnknownType) {
			fields["reason"] = "unknown type"
		}
		helpers.LogError(logger, "bad intent", err, fields)
		_ = msg.Nack(false, false)
		return
	}
	logger.WithFields(in.Fields()).Info("ui intent")
	_ = msg.Ack(false)
}

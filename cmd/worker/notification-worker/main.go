package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/streadway/amqp"

	"github.com/chanjin5212/myfarm-storefront/internal/configs"
	"github.com/chanjin5212/myfarm-storefront/internal/messaging"
	"github.com/chanjin5212/myfarm-storefront/internal/pkg/logger"
)

const workerCount = 5

func main() {
	log := logger.NewLogger()

	cfg, err := configs.LoadWorkerConfig(log)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Info("Starting activity notification worker...")

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("Failed to open channel: %v", err)
	}
	defer ch.Close()

	if err := messaging.SetupNotificationQueue(ch, cfg.ActivityExchange, cfg.ActivityQueue, cfg.PrefetchCount); err != nil {
		log.Fatalf("Failed to setup queue: %v", err)
	}

	deliveries, err := ch.Consume(
		cfg.ActivityQueue,     // queue
		"notification-worker", // consumer
		false,                 // auto-ack
		false,                 // exclusive
		false,                 // no-local
		false,                 // no-wait
		nil,                   // args
	)
	if err != nil {
		log.Fatalf("Failed to start consuming: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		messaging.Consume(ctx, deliveries, workerCount, messaging.NewMailNotifier(log), log)
		close(done)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info("Shutting down worker...")
	case <-done:
		log.Warn("Delivery channel closed")
	}
	cancel()
	<-done
}

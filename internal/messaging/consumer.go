package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

// ConsumerChannel is the subset of *amqp.Channel the notification worker needs.
type ConsumerChannel interface {
	Channel
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	Qos(prefetchCount, prefetchSize int, global bool) error
}

// SetupNotificationQueue declares the exchange and a durable queue bound to
// RoutingPatterns.
func SetupNotificationQueue(ch ConsumerChannel, exchange, queue string, prefetch int) error {
	if err := DeclareExchange(ch, exchange); err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	for _, pattern := range RoutingPatterns {
		if err := ch.QueueBind(queue, pattern, exchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind %s to %s: %w", queue, pattern, err)
		}
	}

	if prefetch > 0 {
		if err := ch.Qos(prefetch, 0, false); err != nil {
			return fmt.Errorf("failed to set prefetch: %w", err)
		}
	}
	return nil
}

type Notifier interface {
	Notify(ctx context.Context, event ActivityEvent) error
}

var notificationSubjects = map[ActivityType]string{
	ActivityUserRegistered: "강원찐농부 회원가입을 환영합니다",
	ActivityUserLoggedIn:   "새로운 로그인이 확인되었습니다",
	ActivityPasswordReset:  "비밀번호가 재설정되었습니다",
}

func NotificationSubject(t ActivityType) string {
	if s, ok := notificationSubjects[t]; ok {
		return s
	}
	return "계정 활동 알림"
}

// MailNotifier logs the email it would send.
type MailNotifier struct {
	log *logrus.Logger
}

func NewMailNotifier(log *logrus.Logger) *MailNotifier {
	return &MailNotifier{log: log}
}

func (n *MailNotifier) Notify(_ context.Context, event ActivityEvent) error {
	if event.Email == "" {
		n.log.WithFields(logrus.Fields{"type": event.Type, "login_id": event.LoginID}).Debug("No email on event, skipping notification")
		return nil
	}

	n.log.WithFields(logrus.Fields{
		"event_id": event.EventID,
		"type":     event.Type,
		"to":       event.Email,
		"subject":  NotificationSubject(event.Type),
	}).Info("[MOCK] Notification email sent")
	return nil
}

// Consume runs workers over deliveries until ctx is done or the channel closes.
// Malformed messages are dropped; notify failures are requeued once.
func Consume(ctx context.Context, deliveries <-chan amqp.Delivery, workers int, notifier Notifier, log *logrus.Logger) {
	if workers <= 0 {
		workers = 1
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case d, ok := <-deliveries:
					if !ok {
						return
					}
					handleDelivery(ctx, d, notifier, log.WithField("worker", worker))
				}
			}
		}(i)
	}
	wg.Wait()
}

func handleDelivery(ctx context.Context, d amqp.Delivery, notifier Notifier, log *logrus.Entry) {
	var event ActivityEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		log.WithError(err).Error("Dropping malformed activity event")
		_ = d.Nack(false, false)
		return
	}

	if err := notifier.Notify(ctx, event); err != nil {
		log.WithFields(logrus.Fields{"event_id": event.EventID, "error": err}).Warn("Notification failed")
		_ = d.Nack(false, !d.Redelivered)
		return
	}

	_ = d.Ack(false)
}

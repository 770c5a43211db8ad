package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockConsumerChannel struct {
	mockChannel
}

func (m *mockConsumerChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	ret := m.Called(name, durable)
	return amqp.Queue{Name: name}, ret.Error(0)
}

func (m *mockConsumerChannel) QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error {
	return m.Called(name, key, exchange).Error(0)
}

func (m *mockConsumerChannel) Qos(prefetchCount, prefetchSize int, global bool) error {
	return m.Called(prefetchCount).Error(0)
}

func TestSetupNotificationQueue(t *testing.T) {
	t.Run("binds every routing pattern", func(t *testing.T) {
		ch := new(mockConsumerChannel)
		ch.On("ExchangeDeclare", "storefront.activity", "topic", true).Return(nil)
		ch.On("QueueDeclare", "storefront.notifications", true).Return(nil)
		ch.On("QueueBind", "storefront.notifications", "user.*", "storefront.activity").Return(nil)
		ch.On("QueueBind", "storefront.notifications", "password.*", "storefront.activity").Return(nil)
		ch.On("Qos", 10).Return(nil)

		require.NoError(t, SetupNotificationQueue(ch, "storefront.activity", "storefront.notifications", 10))
		ch.AssertExpectations(t)
	})

	t.Run("bind failure", func(t *testing.T) {
		ch := new(mockConsumerChannel)
		ch.On("ExchangeDeclare", "ex", "topic", true).Return(nil)
		ch.On("QueueDeclare", "q", true).Return(nil)
		ch.On("QueueBind", "q", "user.*", "ex").Return(errors.New("channel closed"))

		err := SetupNotificationQueue(ch, "ex", "q", 0)
		assert.ErrorContains(t, err, "user.*")
		ch.AssertNotCalled(t, "Qos", mock.Anything)
	})
}

type ackRecord struct {
	tag     uint64
	acked   bool
	requeue bool
}

type fakeAcknowledger struct {
	mu      sync.Mutex
	records []ackRecord
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, ackRecord{tag: tag, acked: true})
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, ackRecord{tag: tag, requeue: requeue})
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return f.Nack(tag, false, requeue)
}

func (f *fakeAcknowledger) byTag() map[uint64]ackRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[uint64]ackRecord, len(f.records))
	for _, r := range f.records {
		out[r.tag] = r
	}
	return out
}

type notifierFunc func(ctx context.Context, event ActivityEvent) error

func (f notifierFunc) Notify(ctx context.Context, event ActivityEvent) error { return f(ctx, event) }

func TestConsume(t *testing.T) {
	log, _ := test.NewNullLogger()
	acker := &fakeAcknowledger{}

	body := func(ev ActivityEvent) []byte {
		b, _ := json.Marshal(ev)
		return b
	}

	deliveries := make(chan amqp.Delivery, 4)
	deliveries <- amqp.Delivery{Acknowledger: acker, DeliveryTag: 1, Body: body(ActivityEvent{Type: ActivityUserRegistered, Email: "farmer@myfarm.kr"})}
	deliveries <- amqp.Delivery{Acknowledger: acker, DeliveryTag: 2, Body: []byte("{not json")}
	deliveries <- amqp.Delivery{Acknowledger: acker, DeliveryTag: 3, Body: body(ActivityEvent{Type: ActivityPasswordReset, Email: "fail@myfarm.kr"})}
	deliveries <- amqp.Delivery{Acknowledger: acker, DeliveryTag: 4, Redelivered: true, Body: body(ActivityEvent{Type: ActivityPasswordReset, Email: "fail@myfarm.kr"})}
	close(deliveries)

	notifier := notifierFunc(func(_ context.Context, ev ActivityEvent) error {
		if ev.Email == "fail@myfarm.kr" {
			return errors.New("smtp unavailable")
		}
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	Consume(ctx, deliveries, 2, notifier, log)

	got := acker.byTag()
	require.Len(t, got, 4)
	assert.True(t, got[1].acked)
	assert.Equal(t, ackRecord{tag: 2}, got[2])
	assert.Equal(t, ackRecord{tag: 3, requeue: true}, got[3])
	assert.Equal(t, ackRecord{tag: 4}, got[4])
}

func TestMailNotifier(t *testing.T) {
	log, hook := test.NewNullLogger()
	n := NewMailNotifier(log)

	require.NoError(t, n.Notify(context.Background(), ActivityEvent{Type: ActivityUserRegistered, EventID: "e1", Email: "farmer@myfarm.kr"}))
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "강원찐농부 회원가입을 환영합니다", hook.LastEntry().Data["subject"])
	assert.Equal(t, "farmer@myfarm.kr", hook.LastEntry().Data["to"])

	hook.Reset()
	require.NoError(t, n.Notify(context.Background(), ActivityEvent{Type: ActivityUserLoggedIn, EventID: "e2", LoginID: "farmer01", Email: "farmer@myfarm.kr"}))
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "새로운 로그인이 확인되었습니다", hook.LastEntry().Data["subject"])

	hook.Reset()
	require.NoError(t, n.Notify(context.Background(), ActivityEvent{Type: ActivityUserLoggedIn, LoginID: "farmer01"}))
	assert.Empty(t, hook.Entries, "debug entries are below the default level")

	assert.Equal(t, "계정 활동 알림", NotificationSubject("user.unknown"))
}

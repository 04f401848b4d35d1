package publisher

import (
	"class-registration-service/internal/app/contracts"
	"class-registration-service/internal/app/models"
	"class-registration-service/internal/pkg/constvars"
	"class-registration-service/internal/pkg/exceptions"
	"class-registration-service/internal/pkg/utils"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var errNotConfirmed = errors.New("message not confirmed")

// rabbitMQPublisher sends registration events to a durable topic exchange.
// The event name is the routing key; staff tooling consumes the bound queue.
type rabbitMQPublisher struct {
	ch       *amqp.Channel
	exchange string
	log      *zap.Logger
	confirms chan amqp.Confirmation
	mu       sync.Mutex
}

// NewRabbitMQPublisher declares the exchange and queue, binds every
// "registration.*" event to the queue and enables publisher confirms.
func NewRabbitMQPublisher(conn *amqp.Connection, exchange, queue string, log *zap.Logger) (contracts.EventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	err = ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, err
	}

	if err := ch.QueueBind(queue, "registration.#", exchange, false, nil); err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return &rabbitMQPublisher{
		ch:       ch,
		exchange: exchange,
		log:      log,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}, nil
}

// Publish blocks until the broker confirms the message.
func (p *rabbitMQPublisher) Publish(ctx context.Context, event *models.RegistrationEvent) error {
	requestID := utils.GetRequestID(ctx)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	msg := amqp.Publishing{
		ContentType:   constvars.MIMEApplicationJSON,
		DeliveryMode:  amqp.Persistent,
		MessageId:     utils.GenerateID(),
		CorrelationId: requestID,
		Timestamp:     time.Now(),
		Type:          event.Event,
		Body:          body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, p.exchange, event.Event, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err)
	}

	select {
	case confirmed := <-p.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(errNotConfirmed)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err())
	}

	p.log.Info("rabbitMQPublisher.Publish succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventKey, event.Event),
		zap.String(constvars.LoggingStudentIDKey, event.StudentID),
	)
	return nil
}

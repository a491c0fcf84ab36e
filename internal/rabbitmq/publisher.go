package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/session-gate/internal/models"
)

const (
	exchangeName = "events"
	queueName    = "user.registered"
	routingKey   = "user.registered"
)

// Publisher публикует события регистрации в RabbitMQ.
type Publisher struct {
	ch *amqp.Channel
}

// registeredEvent — полезная нагрузка события регистрации.
// Хэш пароля в событие не попадает.
type registeredEvent struct {
	UserUID      string    `json:"user_uid"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}

// NewPublisher открывает канал, объявляет exchange и очередь событий
// регистрации и привязывает их друг к другу.
func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	const op = "rabbitmq.NewPublisher"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = ch.ExchangeDeclare(
		exchangeName,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = ch.QueueDeclare(
		queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, queueName, err)
	}

	err = ch.QueueBind(
		queueName,
		routingKey,
		exchangeName,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to bind queue %s: %w", op, queueName, err)
	}

	return &Publisher{ch: ch}, nil
}

// UserRegistered публикует событие регистрации пользователя.
func (p *Publisher) UserRegistered(user *models.User) error {
	const op = "rabbitmq.UserRegistered"

	body, err := json.Marshal(registeredEvent{
		UserUID:      user.UID,
		Name:         user.Name,
		Email:        user.Email,
		RegisteredAt: user.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(
		exchangeName,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает канал публикации.
func (p *Publisher) Close() error {
	return p.ch.Close()
}

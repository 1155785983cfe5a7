package service

// EventPublisher pushes booking lifecycle events to the message broker.
// Satisfied by *rabbitmq.Publisher; nil-checked everywhere so the services
// run without a broker in tests.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

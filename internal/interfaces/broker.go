package interfaces

// ConsumerHandler processes one message value read from the registrations topic.
type ConsumerHandler interface {
	HandleMessage(message string) error
}

// ProducerHandler publishes a keyed message. Registrations are keyed by public id.
type ProducerHandler interface {
	PublishMessage(key, value []byte) error
}

package queue

import (
	"context"
	"crypto/tls"
	"errors"
	"log"
	"time"

	"github.com/ieeespac/spac_site/internal/interfaces"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

type KafkaConsumer struct {
	Reader      *kafka.Reader
	Handler     interfaces.ConsumerHandler
	ServiceName string
}

func NewKafkaConsumer(broker, topic, groupID, username, password string, handler interfaces.ConsumerHandler) *KafkaConsumer {
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}
	if username != "" {
		dialer.TLS = &tls.Config{}
		dialer.SASLMechanism = plain.Mechanism{
			Username: username,
			Password: password,
		}
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{broker},
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 10e3, //10KB
		MaxBytes: 10e6, //10MB
		Dialer:   dialer,
	})

	return &KafkaConsumer{
		Reader:      reader,
		Handler:     handler,
		ServiceName: "Mail Service",
	}
}

// Listen reads messages until ctx is done. Handler errors are logged and the
// message is not retried.
func (kc *KafkaConsumer) Listen(ctx context.Context) error {
	defer kc.Reader.Close()

	for {
		msg, err := kc.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			log.Printf("[%s] read error: %v\n", kc.ServiceName, err)
			continue
		}

		log.Printf("[%s] received key=%s (%d bytes)\n", kc.ServiceName, string(msg.Key), len(msg.Value))

		if err := kc.Handler.HandleMessage(string(msg.Value)); err != nil {
			log.Printf("[%s] handler error: %v\n", kc.ServiceName, err)
		}
	}
}

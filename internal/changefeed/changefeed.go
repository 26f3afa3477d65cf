// Package changefeed publishes store slot changes to a Kafka topic.
package changefeed

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/chrisdamba/weaning/internal/logger"
	"github.com/chrisdamba/weaning/internal/models"
	"github.com/chrisdamba/weaning/internal/store"
)

// Event is the message value written for every changed slot.
type Event struct {
	Slot      store.Slot      `json:"slot"`
	ChangedAt time.Time       `json:"changedAt"`
	Payload   json.RawMessage `json:"payload"`
}

// Publisher implements store.Observer. Send failures are logged and dropped.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	now      func() time.Time
	log      *logger.Logger
}

var _ store.Observer = (*Publisher)(nil)

// NewSaramaProducer dials the comma separated broker list.
func NewSaramaProducer(brokerList string) (sarama.SyncProducer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // required by SyncProducer
	saramaConfig.Net.DialTimeout = 10 * time.Second
	saramaConfig.Net.ReadTimeout = 10 * time.Second
	saramaConfig.Net.WriteTimeout = 10 * time.Second

	brokers := strings.Split(brokerList, ",")
	for i := range brokers {
		brokers[i] = strings.TrimSpace(brokers[i])
	}
	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama producer: %w", err)
	}
	return producer, nil
}

func NewPublisher(producer sarama.SyncProducer, topic string, log *logger.Logger) *Publisher {
	return &Publisher{producer: producer, topic: topic, now: time.Now, log: log}
}

// Open returns nil, nil when the feed is disabled.
func Open(cfg models.KafkaConfig, log *logger.Logger) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	producer, err := NewSaramaProducer(cfg.BrokerList)
	if err != nil {
		return nil, err
	}
	log.Debug("change feed publishing to %s via %s", cfg.Topic, cfg.BrokerList)
	return NewPublisher(producer, cfg.Topic, log), nil
}

func (p *Publisher) Changed(slot store.Slot, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		p.log.Error("change feed: encode %s: %v", slot, err)
		return
	}
	msg, err := json.Marshal(Event{Slot: slot, ChangedAt: p.now().UTC(), Payload: payload})
	if err != nil {
		p.log.Error("change feed: encode event %s: %v", slot, err)
		return
	}
	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(slot),
		Value: sarama.ByteEncoder(msg),
	})
	if err != nil {
		p.log.Warn("change feed: failed to send %s to topic %s: %v", slot, p.topic, err)
	}
}

func (p *Publisher) Close() error {
	if p == nil || p.producer == nil {
		return nil
	}
	return p.producer.Close()
}

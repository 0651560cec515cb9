package producer

import (
	"context"
	"net"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"github.com/RoyceAzure/lab/shopcart/internal/infra/kafka/config"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/kafka/errors"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/kafka/message"
)

// Producer interface defines the methods that a Kafka producer must implement
type Producer interface {
	// Produce sends messages to Kafka
	Produce(ctx context.Context, msgs []message.Message) error
	// Close closes the producer
	Close() error
}

// Writer 為 kafka.Writer 的最小介面, 方便替換成 mock
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// kafkaProducer implements the Producer interface
type kafkaProducer struct {
	writer Writer
	cfg    *config.Config
	closed atomic.Bool
}

// New creates a new Kafka producer
func New(cfg *config.Config) (Producer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchTimeout,
		RequiredAcks: kafka.RequiredAcks(cfg.RequiredAcks),
		Async:        false,

		// 重試由 Produce 控制
		MaxAttempts: 1,

		Transport: &kafka.Transport{
			Dial: func(ctx context.Context, network string, address string) (net.Conn, error) {
				dialer := &kafka.Dialer{
					Timeout:   10 * time.Second, // 連接超時
					DualStack: true,             // 支援 IPv4/IPv6
					KeepAlive: 30 * time.Second, // TCP keepalive
				}
				return dialer.DialContext(ctx, network, address)
			},
		},

		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Error().Msgf("kafka producer error: "+msg, args...)
		}),

		Compression: kafka.Snappy,
	}

	return NewWithWriter(cfg, writer), nil
}

// NewWithWriter 使用外部提供的 writer
func NewWithWriter(cfg *config.Config, writer Writer) Producer {
	return &kafkaProducer{
		writer: writer,
		cfg:    cfg,
	}
}

// Produce implements the Producer interface
// 同步發送消息，會block到所有消息都寫入
// 只有臨時錯誤會重試
func (p *kafkaProducer) Produce(ctx context.Context, msgs []message.Message) error {
	if p.closed.Load() {
		return errors.NewKafkaError("Produce", p.cfg.Topic, errors.ErrProducerClosed)
	}

	if len(msgs) == 0 {
		return nil
	}

	kafkaMsgs := make([]kafka.Message, len(msgs))
	for i, msg := range msgs {
		kafkaMsgs[i] = msg.ToKafkaMessage()
	}

	var err error
	for attempt := 0; attempt <= p.cfg.RetryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return errors.NewKafkaError("Produce", p.cfg.Topic, ctx.Err())
			case <-time.After(p.cfg.RetryDelay):
			}
		}

		err = p.writer.WriteMessages(ctx, kafkaMsgs...)
		if err == nil {
			return nil
		}

		if !errors.IsTemporaryError(err) {
			break
		}
		log.Warn().Err(err).Int("attempt", attempt+1).Str("topic", p.cfg.Topic).Msg("retry produce")
	}

	return errors.NewKafkaError("Produce", p.cfg.Topic, err)
}

// Close implements the Producer interface
func (p *kafkaProducer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}

package producer

import (
	"context"
	"encoding/json"

	"github.com/RoyceAzure/lab/shopcart/internal/domain/model/event"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/kafka/message"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/kafka/producer"
)

const EventTypeHeader = "event_type"

// IOrderEventProducer 發送訂單領域事件
type IOrderEventProducer interface {
	ProduceOrderEvent(ctx context.Context, evt event.Event) error
}

type OrderEventProducer struct {
	producer producer.Producer
}

func NewOrderEventProducer(producer producer.Producer) *OrderEventProducer {
	return &OrderEventProducer{producer: producer}
}

// ProduceOrderEvent key 為訂單ID, 同一張訂單的事件落在同一個 partition
func (p *OrderEventProducer) ProduceOrderEvent(ctx context.Context, evt event.Event) error {
	msg, err := p.convertToMessage(evt)
	if err != nil {
		return err
	}

	return p.producer.Produce(ctx, []message.Message{msg})
}

func (p *OrderEventProducer) convertToMessage(evt event.Event) (message.Message, error) {
	value, err := json.Marshal(evt)
	if err != nil {
		return message.Message{}, err
	}

	return message.Message{
		Key:   []byte(evt.GetAggregateID()),
		Value: value,
		Headers: []message.Header{
			{
				Key:   EventTypeHeader,
				Value: []byte(evt.Type()),
			},
		},
	}, nil
}

// NoopOrderEventProducer 沒有設定 kafka 時使用
type NoopOrderEventProducer struct{}

func (NoopOrderEventProducer) ProduceOrderEvent(ctx context.Context, evt event.Event) error {
	return nil
}

var (
	_ IOrderEventProducer = (*OrderEventProducer)(nil)
	_ IOrderEventProducer = NoopOrderEventProducer{}
)

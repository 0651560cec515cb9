package message

import (
	"time"

	"github.com/segmentio/kafka-go"
)

// Header 代表 Kafka 消息的標頭
type Header struct {
	Key   string
	Value []byte
}

// Message 代表一個 Kafka 消息
type Message struct {
	// Key 用於分區分配，相同的 Key 會被分配到相同的分區
	Key   []byte
	Value []byte
	// Topic 為空時使用 producer 設定的 topic
	Topic   string
	Headers []Header
	Time    time.Time
}

func (m Message) Header(key string) ([]byte, bool) {
	for _, h := range m.Headers {
		if h.Key == key {
			return h.Value, true
		}
	}
	return nil, false
}

// ToKafkaMessage converts our Message to kafka-go Message
func (m Message) ToKafkaMessage() kafka.Message {
	headers := make([]kafka.Header, len(m.Headers))
	for i, h := range m.Headers {
		headers[i] = kafka.Header{
			Key:   h.Key,
			Value: h.Value,
		}
	}

	return kafka.Message{
		Key:     m.Key,
		Value:   m.Value,
		Topic:   m.Topic,
		Headers: headers,
		Time:    m.Time,
	}
}

package config

import (
	"errors"
	"time"
)

var ErrInvalidConfig = errors.New("invalid kafka config")

// Config 生產者配置
type Config struct {
	// Broker 配置
	Brokers []string
	Topic   string

	// 生產者配置
	RequiredAcks  int
	BatchSize     int
	BatchTimeout  time.Duration
	RetryAttempts int           // 最大重試次數
	RetryDelay    time.Duration // 重試間隔
}

// DefaultConfig returns a Config with default settings
func DefaultConfig() *Config {
	return &Config{
		RequiredAcks:  -1, // 等待所有副本確認
		BatchSize:     100,
		BatchTimeout:  10 * time.Millisecond,
		RetryAttempts: 3,
		RetryDelay:    200 * time.Millisecond,
	}
}

func (c *Config) Validate() error {
	if len(c.Brokers) == 0 {
		return errors.Join(ErrInvalidConfig, errors.New("brokers is empty"))
	}
	if c.Topic == "" {
		return errors.Join(ErrInvalidConfig, errors.New("topic is empty"))
	}
	if c.RetryAttempts < 0 {
		return errors.Join(ErrInvalidConfig, errors.New("retry attempts must not be negative"))
	}
	return nil
}

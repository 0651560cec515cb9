package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	ConfigPathEnv     = "SHOPCART_CONFIG"
	defaultConfigPath = "./.env"
)

/*
把init config跟read config分開
init : 需要設置viper watch 與 onConfigChange
read : 一般讀取 需要使用讀寫鎖
*/
var configSingleton *ConfigSingleTon
var muonce sync.Once

type ConfigSingleTon struct {
	Config *Config
	mu     sync.RWMutex
}

type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`

	DbDriver  string `mapstructure:"DB_DRIVER"`
	DbName    string `mapstructure:"POSTGRES_DB"`
	DbHost    string `mapstructure:"POSTGRES_HOST"`
	DbPort    string `mapstructure:"POSTGRES_PORT"`
	DbUser    string `mapstructure:"POSTGRES_USER"`
	DbPas     string `mapstructure:"POSTGRES_PASSWORD"`
	SqliteDsn string `mapstructure:"SQLITE_DSN"`

	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int           `mapstructure:"REDIS_DB"`
	ProductCacheTTL time.Duration `mapstructure:"PRODUCT_CACHE_TTL"`

	KafkaBrokers    string `mapstructure:"KAFKA_BROKERS"`
	KafkaOrderTopic string `mapstructure:"KAFKA_ORDER_TOPIC"`

	RateLimitType     string        `mapstructure:"RATE_LIMIT_TYPE"`
	RateLimitCapacity int           `mapstructure:"RATE_LIMIT_CAPACITY"`
	RateLimitRefill   time.Duration `mapstructure:"RATE_LIMIT_REFILL"`

	SeedFile string `mapstructure:"SEED_FILE"`
}

const (
	DbDriverPostgres = "postgres"
	DbDriverSqlite   = "sqlite"
)

// GetKafkaBrokers 逗號分隔, 空字串回傳 nil
func (c *Config) GetKafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", DbDriverSqlite)
	v.SetDefault("POSTGRES_DB", "shopcart")
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_PASSWORD", "")
	v.SetDefault("SQLITE_DSN", "file:shopcart.db?cache=shared")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("PRODUCT_CACHE_TTL", "10m")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_ORDER_TOPIC", "shopcart.order")
	v.SetDefault("RATE_LIMIT_TYPE", "")
	v.SetDefault("RATE_LIMIT_CAPACITY", 100)
	v.SetDefault("RATE_LIMIT_REFILL", "1s")
	v.SetDefault("SEED_FILE", "")
}

func GetConfig() *Config {
	initConfig()
	configSingleton.mu.RLock()
	defer configSingleton.mu.RUnlock()
	return configSingleton.Config
}

func initConfig() {
	muonce.Do(func() {
		configSingleton = &ConfigSingleTon{}
		v := viper.GetViper()
		path := configPath()
		cf, err := loadConfig(v, path)
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("error read config")
		}
		configSingleton.Config = cf

		if fileExists(path) {
			v.WatchConfig()
			v.OnConfigChange(func(e fsnotify.Event) {
				cf, err := loadConfig(v, path)
				if err != nil {
					log.Error().Err(err).Str("file", e.Name).Msg("failed to reload config file")
					return
				}
				configSingleton.mu.Lock()
				configSingleton.Config = cf
				configSingleton.mu.Unlock()
				log.Info().Str("file", e.Name).Msg("config reloaded")
			})
		}
	})
}

// LoadConfig 讀取指定檔案, 檔案不存在時只用環境變數與預設值
func LoadConfig(path string) (*Config, error) {
	return loadConfig(viper.New(), path)
}

/*
單純回傳錯誤  由外部決定要不要Fatal
*/
func loadConfig(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	if fileExists(path) {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cf := &Config{}
	if err := v.Unmarshal(cf); err != nil {
		return nil, err
	}
	return cf, nil
}

func configPath() string {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p
	}
	return defaultConfigPath
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || err != nil {
		return false
	}
	return !info.IsDir()
}

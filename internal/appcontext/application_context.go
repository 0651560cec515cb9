package appcontext

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/RoyceAzure/lab/shopcart/internal/config"
	kafka_config "github.com/RoyceAzure/lab/shopcart/internal/infra/kafka/config"
	kafka_producer "github.com/RoyceAzure/lab/shopcart/internal/infra/kafka/producer"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/producer"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/repository/redis_decorator"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/shopcart/internal/pkg/metrics"
	"github.com/RoyceAzure/lab/shopcart/internal/pkg/ratelimit"
	"github.com/RoyceAzure/lab/shopcart/internal/pkg/redis_client"
	"github.com/RoyceAzure/lab/shopcart/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type ApplicationContext struct {
	Cf            *config.Config
	Logger        *zerolog.Logger
	DbConn        *gorm.DB
	Store         db.UnifiedDB
	ProductRepo   db.IProductRepository
	RedisClient   *redis.Client
	KafkaProducer kafka_producer.Producer
	EventProducer producer.IOrderEventProducer

	ProductService service.IProductService
	OrderService   service.IOrderService
	UserService    service.IUserService
	CartService    service.ICartService

	RateLimiter   ratelimit.ILimiter
	ServerMetrics *metrics.ServerMetrics
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}
	if err := app.Init(); err != nil {
		return nil, err
	}
	return &app, nil
}

func (app *ApplicationContext) Init() error {
	steps := []func() error{
		app.setUpLogger,
		app.setUpDb,
		app.setUpRedis,
		app.setUpProducer,
		app.setUpServices,
		app.setUpRateLimiter,
		app.setUpMetrics,
		app.seedCatalog,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (app *ApplicationContext) setUpLogger() error {
	level, err := zerolog.ParseLevel(app.Cf.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	app.Logger = &logger
	app.Logger.Info().Str("level", level.String()).Msg("Finish setup logger")
	return nil
}

func (app *ApplicationContext) setUpDb() error {
	app.Logger.Info().Str("driver", app.Cf.DbDriver).Msg("Start setup database connection")
	var (
		conn *gorm.DB
		err  error
	)
	switch app.Cf.DbDriver {
	case config.DbDriverPostgres:
		conn, err = db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	case config.DbDriverSqlite:
		conn, err = db.GetSqliteConn(app.Cf.SqliteDsn)
	default:
		err = fmt.Errorf("unsupported db driver %q", app.Cf.DbDriver)
	}
	if err != nil {
		return err
	}
	app.DbConn = conn

	app.Store = db.NewUnifiedDB(conn)
	if err := app.Store.InitMigrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	app.ProductRepo = app.Store
	app.Logger.Info().Msg("Finish setup database connection")
	return nil
}

// setUpRedis 沒有設定 REDIS_ADDR 時直接讀 db
func (app *ApplicationContext) setUpRedis() error {
	if app.Cf.RedisAddr == "" {
		app.Logger.Info().Msg("Skip setup redis, REDIS_ADDR is empty")
		return nil
	}

	app.Logger.Info().Str("addr", app.Cf.RedisAddr).Msg("Start setup redis")
	client, err := redis_client.GetRedisClient(app.Cf.RedisAddr,
		redis_client.WithPassword(app.Cf.RedisPassword),
		redis_client.WithDB(app.Cf.RedisDB),
	)
	if err != nil {
		return err
	}
	if err := redis_client.Ping(context.Background(), client, 3*time.Second); err != nil {
		return fmt.Errorf("ping redis %s: %w", app.Cf.RedisAddr, err)
	}
	app.RedisClient = client
	app.ProductRepo = redis_decorator.NewCacheAsideProductRepo(app.Store, redis_repo.NewProductRedisRepo(client, app.Cf.ProductCacheTTL))
	app.Logger.Info().Msg("Finish setup redis")
	return nil
}

// setUpProducer 沒有設定 KAFKA_BROKERS 時事件不送出
func (app *ApplicationContext) setUpProducer() error {
	brokers := app.Cf.GetKafkaBrokers()
	if len(brokers) == 0 {
		app.Logger.Info().Msg("Skip setup kafka producer, KAFKA_BROKERS is empty")
		app.EventProducer = producer.NoopOrderEventProducer{}
		return nil
	}

	app.Logger.Info().Strs("brokers", brokers).Msg("Start setup kafka producer")
	cfg := kafka_config.DefaultConfig()
	cfg.Brokers = brokers
	cfg.Topic = app.Cf.KafkaOrderTopic
	p, err := kafka_producer.New(cfg)
	if err != nil {
		return err
	}
	app.KafkaProducer = p
	app.EventProducer = producer.NewOrderEventProducer(p)
	app.Logger.Info().Msg("Finish setup kafka producer")
	return nil
}

func (app *ApplicationContext) setUpServices() error {
	app.Logger.Info().Msg("Start setup services")
	app.ProductService = service.NewProductService(app.ProductRepo, app.Store)
	app.OrderService = service.NewOrderService(app.Store, app.Store, app.Store, app.ProductRepo, app.EventProducer)
	app.UserService = service.NewUserService(app.Store, app.OrderService)
	app.CartService = service.NewCartService(app.ProductService, app.OrderService, app.Store)
	app.Logger.Info().Msg("Finish setup services")
	return nil
}

// setUpRateLimiter RATE_LIMIT_TYPE 為空時不限流
func (app *ApplicationContext) setUpRateLimiter() error {
	if app.Cf.RateLimitType == "" {
		app.Logger.Info().Msg("Skip setup rate limiter")
		return nil
	}

	app.Logger.Info().Str("type", app.Cf.RateLimitType).Msg("Start setup rate limiter")
	cfg := ratelimit.GetDefaultLimiterConfig()
	if app.Cf.RateLimitCapacity > 0 {
		cfg.Capacity = app.Cf.RateLimitCapacity
		cfg.RatePS = app.Cf.RateLimitCapacity
	}
	if app.Cf.RateLimitRefill > 0 {
		cfg.RefillRate = app.Cf.RateLimitRefill
	}

	var client ratelimit.RedisClient
	if app.RedisClient != nil {
		client = app.RedisClient
	}
	limiter, err := ratelimit.NewLimiter(ratelimit.RateLimitType(app.Cf.RateLimitType), &cfg, client)
	if err != nil {
		return err
	}
	app.RateLimiter = limiter
	app.Logger.Info().Msg("Finish setup rate limiter")
	return nil
}

func (app *ApplicationContext) setUpMetrics() error {
	app.ServerMetrics = metrics.NewServerMetrics("api")
	app.Logger.Info().Msg("Finish setup metrics")
	return nil
}

// seedCatalog 只在商品表為空時寫入
func (app *ApplicationContext) seedCatalog() error {
	if app.Cf.SeedFile == "" {
		return nil
	}

	app.Logger.Info().Str("file", app.Cf.SeedFile).Msg("Start seed catalog")
	seed, err := config.LoadCatalogSeed(app.Cf.SeedFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	products, err := app.ProductService.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(products) > 0 {
		app.Logger.Info().Int("count", len(products)).Msg("Skip seed catalog, products exist")
		return nil
	}

	for _, p := range seed.Products {
		if _, err := app.ProductService.Create(ctx, p.Type, p.UnitPrice); err != nil {
			return err
		}
	}
	app.Logger.Info().Int("count", len(seed.Products)).Msg("Finish seed catalog")
	return nil
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	app.Logger.Info().Msg("Start application shutdown")

	done := make(chan error, 1)
	go func() {
		var errs []error
		if app.RateLimiter != nil {
			app.RateLimiter.Stop()
		}
		if app.KafkaProducer != nil {
			if err := app.KafkaProducer.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close kafka producer: %w", err))
			}
		}
		if app.RedisClient != nil {
			if err := app.RedisClient.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close redis: %w", err))
			}
		}
		if app.Store != nil {
			if err := app.Store.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close db: %w", err))
			}
		}
		done <- errors.Join(errs...)
	}()

	select {
	case err := <-done:
		app.Logger.Info().Msg("Finish application shutdown")
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

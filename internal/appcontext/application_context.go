package appcontext

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/EventStore/EventStore-Client-Go/v4/esdb"
	"github.com/RoyceAzure/lab/fulfillment/internal/config"
	"github.com/RoyceAzure/lab/fulfillment/internal/constants"
	"github.com/RoyceAzure/lab/fulfillment/internal/infra/eventdb"
	"github.com/RoyceAzure/lab/fulfillment/internal/infra/notifier"
	"github.com/RoyceAzure/lab/fulfillment/internal/infra/producer"
	"github.com/RoyceAzure/lab/fulfillment/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/fulfillment/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/fulfillment/internal/pkg/logger"
	"github.com/RoyceAzure/lab/fulfillment/internal/pkg/util"
	"github.com/RoyceAzure/lab/fulfillment/internal/ratelimit"
	"github.com/RoyceAzure/lab/fulfillment/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type ApplicationContext struct {
	Cf     *config.Config
	Logger *zerolog.Logger

	DbDao       *db.DbDao
	Store       db.IStore
	RedisClient *redis.Client
	EsdbClient  *esdb.Client

	CartRepo    redis_repo.ICartRepository
	StockStore  service.StockStore
	Notifier    service.Notifier
	Journal     service.Journal
	Alerter     service.Alerter
	RateLimiter ratelimit.Limiter

	LedgerService      *service.LedgerService
	InventoryGuard     *service.InventoryGuard
	Settlement         *service.SettlementCoordinator
	FulfillmentService *service.FulfillmentService
	OrderAssembler     *service.OrderAssembler
	OrderQueryService  *service.OrderQueryService
	CartService        *service.CartService
	CustomerHook       *service.CustomerHook
	Reconciler         *service.SettlementReconciler

	alertWriter    *producer.LogWriter
	kafkaNotifier  *notifier.KafkaNotifier
	backgroundJobs []service.BackGroundService
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}
	err := app.Init()
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (app *ApplicationContext) Init() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"logger", app.setUpLogger},
		{"database", app.setUpDb},
		{"redis", app.setUpRedis},
		{"stock store", app.setUpStockStore},
		{"notifier", app.setUpNotifier},
		{"order journal", app.setUpJournal},
		{"services", app.setUpServices},
		{"settlement reconciler", app.setUpReconciler},
		{"rate limiter", app.setUpRateLimiter},
	}

	for _, step := range steps {
		log.Printf("Start setup %s", step.name)
		if err := step.fn(); err != nil {
			return fmt.Errorf("setup %s: %w", step.name, err)
		}
		log.Printf("Finish setup %s", step.name)
	}
	return nil
}

func (app *ApplicationContext) retryConfig() util.RetryConfig {
	return util.RetryConfig{
		Limit:    app.Cf.RetryLimit,
		Delay:    app.Cf.RetryDelay,
		MaxDelay: 2 * time.Second,
	}
}

// kafka 有設定時, error 以上的 log 另外送到 alert topic
func (app *ApplicationContext) setUpLogger() error {
	if len(app.Cf.KafkaBrokers) == 0 {
		l := logger.New(app.Cf.ModulerName, app.Cf.LogLevel)
		app.Logger = &l
		return nil
	}

	bootLogger := logger.New(app.Cf.ModulerName, app.Cf.LogLevel)
	pcf := producer.DefaultConfig()
	pcf.Brokers = app.Cf.KafkaBrokers
	pcf.Topic = app.Cf.KafkaAlertTopic
	p, err := producer.New(pcf, &bootLogger)
	if err != nil {
		return err
	}
	app.alertWriter = producer.NewLogWriter(p, pcf.WriteTimeout)

	l := logger.New(app.Cf.ModulerName, app.Cf.LogLevel, &zerolog.FilteredLevelWriter{
		Writer: zerolog.LevelWriterAdapter{Writer: app.alertWriter},
		Level:  zerolog.ErrorLevel,
	})
	app.Logger = &l
	return nil
}

func (app *ApplicationContext) setUpDb() error {
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return err
	}
	app.DbDao = db.NewDbDao(conn)
	if err := app.DbDao.InitMigrate(); err != nil {
		return err
	}
	app.Store = db.NewStore(app.DbDao)
	return nil
}

func (app *ApplicationContext) setUpRedis() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := []redis_repo.Option{
		redis_repo.WithPassword(app.Cf.RedisPassword),
		redis_repo.WithDB(app.Cf.RedisDB),
	}
	if app.Cf.RedisPoolSize > 0 {
		opts = append(opts, redis_repo.WithPoolSize(app.Cf.RedisPoolSize))
	}
	client, err := redis_repo.GetRedisClient(ctx, app.Cf.RedisAddr, opts...)
	if err != nil {
		return err
	}
	app.RedisClient = client
	app.CartRepo = redis_repo.NewCartRepo(client)
	return nil
}

// redis 模式啟動時把 db 庫存同步進 redis
// 已存在的 key 不覆蓋, 避免服務重啟時把已預留的量加回去
func (app *ApplicationContext) setUpStockStore() error {
	switch constants.StockBackend(app.Cf.StockBackend) {
	case constants.StockBackendDB:
		app.StockStore = app.Store.Products()
		return nil
	case constants.StockBackendRedis:
	default:
		return fmt.Errorf("unknown stock backend %q", app.Cf.StockBackend)
	}

	repo := redis_repo.NewProductRedisRepo(app.RedisClient)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	products, err := app.Store.Products().GetAllProducts(ctx)
	if err != nil {
		return err
	}
	synced := 0
	for _, product := range products {
		ok, err := repo.InitProductStock(ctx, product.ProductID, product.Stock)
		if err != nil {
			return err
		}
		if ok {
			synced++
		}
	}
	app.Logger.Info().Int("products", len(products)).Int("synced", synced).Msg("product stock loaded into redis")

	app.StockStore = repo
	return nil
}

func (app *ApplicationContext) setUpNotifier() error {
	if len(app.Cf.KafkaBrokers) == 0 {
		app.Notifier = notifier.NewLogNotifier(app.Logger)
		return nil
	}

	pcf := producer.DefaultConfig()
	pcf.Brokers = app.Cf.KafkaBrokers
	pcf.Topic = app.Cf.KafkaNotifyTopic
	p, err := producer.New(pcf, app.Logger)
	if err != nil {
		return err
	}
	app.kafkaNotifier = notifier.NewKafkaNotifier(p)
	app.Notifier = app.kafkaNotifier
	return nil
}

func (app *ApplicationContext) setUpJournal() error {
	if app.Cf.EsdbUrl == "" {
		app.Journal = eventdb.NoopJournal{}
		return nil
	}

	client, err := eventdb.NewClient(app.Cf.EsdbUrl)
	if err != nil {
		return err
	}
	app.EsdbClient = client
	app.Journal = eventdb.NewEsdbJournal(client)
	return nil
}

func (app *ApplicationContext) setUpServices() error {
	retry := app.retryConfig()
	reserveRetry := retry
	reserveRetry.Limit = app.Cf.ReserveRetryLimit

	app.Alerter = service.NewLogAlerter(app.Logger)
	app.LedgerService = service.NewLedgerService(app.Store, app.Logger)
	app.InventoryGuard = service.NewInventoryGuard(app.StockStore, reserveRetry, app.Cf.ReserveTimeout, app.Logger)
	app.Settlement = service.NewSettlementCoordinator(app.Store, app.LedgerService, app.Notifier, app.Journal, app.Alerter, retry, app.Logger)
	app.FulfillmentService = service.NewFulfillmentService(
		app.Store,
		app.LedgerService,
		app.Settlement,
		app.InventoryGuard,
		app.Journal,
		app.Alerter,
		service.FlatRateDelivery(app.Cf.DeliveryDays),
		retry,
		app.Logger,
	)
	app.OrderAssembler = service.NewOrderAssembler(
		app.Store,
		app.CartRepo,
		app.InventoryGuard,
		app.Notifier,
		app.Journal,
		app.Alerter,
		retry,
		app.Logger,
	)
	app.OrderQueryService = service.NewOrderQueryService(app.Store.Orders())
	app.CartService = service.NewCartService(app.CartRepo, app.Store.Products())
	app.CustomerHook = service.NewCustomerHook(app.LedgerService, app.Logger)
	return nil
}

func (app *ApplicationContext) setUpReconciler() error {
	app.Reconciler = service.NewSettlementReconciler(app.Store.Orders(), app.FulfillmentService, app.Cf.ReconcileInterval, app.Logger)
	if err := app.Reconciler.Start(); err != nil {
		return err
	}
	app.backgroundJobs = append(app.backgroundJobs, app.Reconciler)
	return nil
}

func (app *ApplicationContext) setUpRateLimiter() error {
	cfg := ratelimit.GetDefaultLimiterConfig()
	cfg.Key = app.Cf.ModulerName
	if app.Cf.RateLimitCapacity > 0 {
		cfg.Capacity = app.Cf.RateLimitCapacity
	}
	if app.Cf.RateLimitRate > 0 {
		cfg.RatePS = app.Cf.RateLimitRate
	}

	switch ratelimit.RateLimitType(app.Cf.RateLimitType) {
	case ratelimit.TokenBucketType:
		app.RateLimiter = ratelimit.NewTokenBucket(&cfg)
	case ratelimit.RedisBucketType:
		app.RateLimiter = ratelimit.NewRsBucketToken(app.RedisClient, &cfg)
	case ratelimit.NoLimitType:
		app.RateLimiter = ratelimit.NoLimit()
	default:
		return fmt.Errorf("unknown rate limit type %q", app.Cf.RateLimitType)
	}
	return nil
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	log.Printf("Start application shutdown")

	done := make(chan error, 1)
	go func() {
		var errs []error

		for _, job := range app.backgroundJobs {
			if err := job.Stop(10 * time.Second); err != nil {
				//有錯誤不結束流程
				errs = append(errs, err)
			}
		}

		if app.kafkaNotifier != nil {
			log.Printf("Closing kafka notifier...")
			if err := app.kafkaNotifier.Close(); err != nil {
				errs = append(errs, err)
			}
		}

		if app.EsdbClient != nil {
			log.Printf("Closing eventstore client...")
			if err := app.EsdbClient.Close(); err != nil {
				errs = append(errs, err)
			}
		}

		if app.RedisClient != nil {
			log.Printf("Closing redis connection...")
			if err := app.RedisClient.Close(); err != nil {
				errs = append(errs, err)
			}
		}

		if app.DbDao != nil {
			log.Printf("Closing database connection...")
			if sqlDB, err := app.DbDao.DB.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					errs = append(errs, err)
				}
			}
		}

		if err := errors.Join(errs...); err != nil && app.Logger != nil {
			app.Logger.Error().Err(err).Msg("application shutdown")
		}
		// alert writer 最後關, 上面的錯誤還要送出去
		if app.alertWriter != nil {
			if err := app.alertWriter.Close(); err != nil {
				errs = append(errs, err)
			}
		}

		log.Printf("Application shutdown complete")
		done <- errors.Join(errs...)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %v", ctx.Err())
	}
}

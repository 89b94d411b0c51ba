package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	viper "github.com/spf13/viper"
)

/*
把init跟read分開
init : 需要設置viper watch 與 onConfigChange
read : 一般讀取, 需要使用讀寫鎖
*/
var configSingleton *ConfigSingleTon
var muonce sync.Once

type ConfigSingleTon struct {
	Config *Config
	mu     sync.RWMutex
}

type Config struct {
	ModulerName string `mapstructure:"MODULER_NAME"`
	ServerPort  string `mapstructure:"SERVER_PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	DbName string `mapstructure:"POSTGRES_DB"`
	DbHost string `mapstructure:"POSTGRES_HOST"`
	DbPort string `mapstructure:"POSTGRES_PORT"`
	DbUser string `mapstructure:"POSTGRES_USER"`
	DbPas  string `mapstructure:"POSTGRES_PASSWORD"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	// 0 使用 go-redis 預設
	RedisPoolSize int `mapstructure:"REDIS_POOL_SIZE"`

	// 空字串代表不啟用kafka, 通知改寫到log
	KafkaBrokers     []string `mapstructure:"KAFKA_BROKERS"`
	KafkaNotifyTopic string   `mapstructure:"KAFKA_NOTIFY_TOPIC"`
	KafkaAlertTopic  string   `mapstructure:"KAFKA_ALERT_TOPIC"`

	// 空字串代表不寫入訂單流水帳
	EsdbUrl string `mapstructure:"ESDB_URL"`

	// redis | db
	StockBackend      string        `mapstructure:"STOCK_BACKEND"`
	ReserveTimeout    time.Duration `mapstructure:"RESERVE_TIMEOUT"`
	ReserveRetryLimit int           `mapstructure:"RESERVE_RETRY_LIMIT"`
	RetryLimit        int           `mapstructure:"RETRY_LIMIT"`
	RetryDelay        time.Duration `mapstructure:"RETRY_DELAY"`
	DeliveryDays      int           `mapstructure:"DELIVERY_DAYS"`
	ReconcileInterval time.Duration `mapstructure:"RECONCILE_INTERVAL"`

	// token_bucket | redis_bucket | none
	RateLimitType     string  `mapstructure:"RATE_LIMIT_TYPE"`
	RateLimitCapacity int     `mapstructure:"RATE_LIMIT_CAPACITY"`
	RateLimitRate     float64 `mapstructure:"RATE_LIMIT_RATE"`
}

var defaults = map[string]interface{}{
	"MODULER_NAME":        "fulfillment",
	"SERVER_PORT":         "8080",
	"LOG_LEVEL":           "info",
	"POSTGRES_DB":         "fulfillment",
	"POSTGRES_HOST":       "localhost",
	"POSTGRES_PORT":       "5432",
	"POSTGRES_USER":       "postgres",
	"POSTGRES_PASSWORD":   "",
	"REDIS_ADDR":          "localhost:6379",
	"REDIS_PASSWORD":      "",
	"REDIS_DB":            0,
	"REDIS_POOL_SIZE":     0,
	"KAFKA_BROKERS":       []string{},
	"KAFKA_NOTIFY_TOPIC":  "fulfillment-notifications",
	"KAFKA_ALERT_TOPIC":   "ops-alerts",
	"ESDB_URL":            "",
	"STOCK_BACKEND":       "redis",
	"RESERVE_TIMEOUT":     "2s",
	"RESERVE_RETRY_LIMIT": 3,
	"RETRY_LIMIT":         5,
	"RETRY_DELAY":         "100ms",
	"DELIVERY_DAYS":       5,
	"RECONCILE_INTERVAL":  "1m",
	"RATE_LIMIT_TYPE":     "token_bucket",
	"RATE_LIMIT_CAPACITY": 100,
	"RATE_LIMIT_RATE":     50.0,
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
		cf, usedFile, err := loadConfig()
		if err != nil {
			log.Fatalf("error read config: %v", err)
		}
		configSingleton.Config = cf

		if !usedFile {
			return
		}
		viper.WatchConfig()
		viper.OnConfigChange(func(e fsnotify.Event) {
			if cf, _, err := loadConfig(); err == nil {
				configSingleton.mu.Lock()
				configSingleton.Config = cf
				configSingleton.mu.Unlock()
				log.Printf("config reloaded from %s", e.Name)
			} else {
				log.Printf("failed to reload config file: %v", err)
			}
		})
	})
}

/*
單純回傳錯誤, 由外部決定要不要Fatal
.env 不存在時只使用環境變數與預設值
*/
func loadConfig() (cf *Config, usedFile bool, err error) {
	configSingleton.mu.Lock()
	defer configSingleton.mu.Unlock()

	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
	viper.SetConfigFile(configPath())
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	usedFile = true
	if err = viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, false, err
		}
		usedFile = false
		err = nil
	}

	cf = &Config{}
	if err = viper.Unmarshal(cf); err != nil {
		return nil, false, err
	}
	return cf, usedFile, nil
}

func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return ".env"
}

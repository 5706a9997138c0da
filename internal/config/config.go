package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable guidelines:
//   - required: only what cannot have a sane local default
//   - default: local friendly values (DynamoDB local, memory stores, mock gateway off)
// -----------------------------------------------------------------------------

const (
	StoreBackendDynamoDB = "dynamodb"
	StoreBackendMemory   = "memory"

	DistanceModeConstant  = "constant"
	DistanceModeHaversine = "haversine"
)

type Config struct {
	Server      ServerConfig
	Log         LogConfig
	CORS        CORSConfig
	Store       StoreConfig
	DynamoDB    DynamoDBConfig
	Redis       RedisConfig
	Storage     StorageConfig
	MercadoPago MercadoPagoConfig
	Pricing     PricingConfig
	Matching    MatchingConfig
	Retry       RetryConfig
	Catalog     CatalogConfig
	Idempotency IdempotencyConfig
}

type ServerConfig struct {
	Port    string `envconfig:"PORT" default:"8080"`
	GinMode string `envconfig:"GIN_MODE" default:"release"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PATCH,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key,X-Customer-ID,X-Hub-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Idempotency-Replayed"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type StoreConfig struct {
	Backend string `envconfig:"STORE_BACKEND" default:"dynamodb"`
}

type DynamoDBConfig struct {
	Region          string `envconfig:"AWS_REGION" default:"us-east-1"`
	AccessKeyID     string `envconfig:"AWS_ACCESS_KEY_ID" default:"local"`
	SecretAccessKey string `envconfig:"AWS_SECRET_ACCESS_KEY" default:"local"`
	Endpoint        string `envconfig:"DYNAMODB_ENDPOINT"`
	JobsTable       string `envconfig:"JOBS_TABLE" default:"jobs"`
	HubsTable       string `envconfig:"HUBS_TABLE" default:"hubs"`
	PaymentsTable   string `envconfig:"PAYMENTS_TABLE" default:"payments"`
	CreateTables    bool   `envconfig:"DYNAMODB_CREATE_TABLES" default:"false"`
}

// RedisConfig is optional. An empty Addr selects the in-memory quote cache
// and idempotency store.
type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	Prefix   string `envconfig:"REDIS_PREFIX" default:"qutlas"`
}

// StorageConfig is optional. Without an endpoint design locations are
// validated but not checked against object storage.
type StorageConfig struct {
	Endpoint      string        `envconfig:"MINIO_ENDPOINT"`
	AccessKey     string        `envconfig:"MINIO_ACCESS_KEY"`
	SecretKey     string        `envconfig:"MINIO_SECRET_KEY"`
	UseSSL        bool          `envconfig:"MINIO_USE_SSL" default:"false"`
	Region        string        `envconfig:"MINIO_REGION"`
	DesignsBucket string        `envconfig:"MINIO_DESIGNS_BUCKET" default:"designs"`
	PresignExpiry time.Duration `envconfig:"MINIO_PRESIGN_EXPIRY" default:"15m"`
}

type MercadoPagoConfig struct {
	AccessToken     string `envconfig:"MERCADOPAGO_ACCESS_TOKEN"`
	NotificationURL string `envconfig:"MERCADOPAGO_NOTIFICATION_URL"`
	SuccessURL      string `envconfig:"MERCADOPAGO_SUCCESS_URL"`
	Mock            bool   `envconfig:"PAYMENT_GATEWAY_MOCK" default:"false"`
}

type PricingConfig struct {
	Currency        string  `envconfig:"QUOTE_CURRENCY" default:"BRL"`
	StrictMaterials bool    `envconfig:"PRICING_STRICT_MATERIALS" default:"false"`
	PlatformFeeRate float64 `envconfig:"PLATFORM_FEE_RATE" default:"0.15"`
}

type MatchingConfig struct {
	DistanceMode  string  `envconfig:"MATCH_DISTANCE_MODE" default:"constant"`
	MaxDistanceKm float64 `envconfig:"MATCH_MAX_DISTANCE_KM" default:"1000"`
	HubLoadPerJob float64 `envconfig:"HUB_LOAD_PER_JOB" default:"0.05"`
}

type RetryConfig struct {
	MaxAttempts int           `envconfig:"RETRY_MAX_ATTEMPTS" default:"3"`
	Backoff     time.Duration `envconfig:"RETRY_BACKOFF" default:"50ms"`
}

// CatalogConfig points at the YAML file holding part templates and the hub
// registry seed. Hubs are seeded only when HubSeed is set.
type CatalogConfig struct {
	File    string `envconfig:"CATALOG_FILE" default:"configs/catalog.example.yaml"`
	HubSeed bool   `envconfig:"HUB_SEED_FROM_CATALOG" default:"false"`
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"24h"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch strings.ToLower(c.Store.Backend) {
	case StoreBackendDynamoDB, StoreBackendMemory:
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", StoreBackendDynamoDB, StoreBackendMemory, c.Store.Backend)
	}
	switch strings.ToLower(c.Matching.DistanceMode) {
	case DistanceModeConstant, DistanceModeHaversine:
	default:
		return fmt.Errorf("MATCH_DISTANCE_MODE must be %q or %q, got %q", DistanceModeConstant, DistanceModeHaversine, c.Matching.DistanceMode)
	}
	if c.Matching.HubLoadPerJob < 0 || c.Matching.HubLoadPerJob > 1 {
		return fmt.Errorf("HUB_LOAD_PER_JOB must be within [0,1], got %v", c.Matching.HubLoadPerJob)
	}
	if c.Pricing.PlatformFeeRate < 0 {
		return fmt.Errorf("PLATFORM_FEE_RATE must be >= 0, got %v", c.Pricing.PlatformFeeRate)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("RETRY_MAX_ATTEMPTS must be >= 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}

func (c StoreConfig) UseMemory() bool {
	return strings.EqualFold(c.Backend, StoreBackendMemory)
}

func NewTestConfig() Config {
	return Config{
		Server:      ServerConfig{Port: "8889", GinMode: "test"},
		Log:         LogConfig{Level: "error"},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:3000"},
			AllowMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Idempotency-Key", "X-Customer-ID", "X-Hub-ID"},
			MaxAge:       time.Hour,
		},
		Store:       StoreConfig{Backend: StoreBackendMemory},
		DynamoDB:    DynamoDBConfig{Region: "us-east-1", AccessKeyID: "local", SecretAccessKey: "local", JobsTable: "jobs", HubsTable: "hubs", PaymentsTable: "payments"},
		MercadoPago: MercadoPagoConfig{Mock: true},
		Pricing:     PricingConfig{Currency: "BRL", PlatformFeeRate: 0.15},
		Matching:    MatchingConfig{DistanceMode: DistanceModeConstant, MaxDistanceKm: 1000, HubLoadPerJob: 0.05},
		Retry:       RetryConfig{MaxAttempts: 3, Backoff: 50 * time.Millisecond},
		Catalog:     CatalogConfig{File: "configs/catalog.example.yaml"},
		Idempotency: IdempotencyConfig{TTL: 24 * time.Hour},
	}
}

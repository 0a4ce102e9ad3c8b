package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Bootstrap BootstrapConfig
	Event     EventConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	AMQP      AMQPConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type StoreConfig struct {
	Driver      string `envconfig:"STORE_DRIVER" default:"postgres"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Colombo"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Content-Disposition"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Colombo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"19800"` // 5.5*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"12h"`
}

// Seeded accounts; an empty password skips that account.
type BootstrapConfig struct {
	AdminUsername    string `envconfig:"BOOTSTRAP_ADMIN_USERNAME" default:"admin"`
	AdminPassword    string `envconfig:"BOOTSTRAP_ADMIN_PASSWORD"`
	EntranceUsername string `envconfig:"BOOTSTRAP_ENTRANCE_USERNAME" default:"entrance"`
	EntrancePassword string `envconfig:"BOOTSTRAP_ENTRANCE_PASSWORD"`
}

// Defaults for the settings record written on first boot.
type EventConfig struct {
	Name            string `envconfig:"EVENT_NAME" default:"Annual Dinner" copier:"EventName"`
	Venue           string `envconfig:"EVENT_VENUE" default:"Main Hall"`
	TableSize       int    `envconfig:"EVENT_TABLE_SIZE" default:"120"`
	SeatSize        int    `envconfig:"EVENT_SEAT_SIZE" default:"30"`
	NoOfColumns     int    `envconfig:"EVENT_NO_OF_COLUMNS" default:"6"`
	BaseImagePath   string `envconfig:"EVENT_BASE_IMAGE_PATH"`
	BaseImageWidth  int    `envconfig:"EVENT_BASE_IMAGE_WIDTH" default:"2000"`
	BaseImageHeight int    `envconfig:"EVENT_BASE_IMAGE_HEIGHT" default:"1414"`
	FontSize        int    `envconfig:"EVENT_FONT_SIZE" default:"28"`
	QRX             int    `envconfig:"EVENT_QR_X" default:"950"`
	QRY             int    `envconfig:"EVENT_QR_Y" default:"820"`
	TextX           int    `envconfig:"EVENT_TEXT_X" default:"950"`
	TextY           int    `envconfig:"EVENT_TEXT_Y" default:"1120"`
	TicketPrefix    string `envconfig:"EVENT_TICKET_PREFIX" default:"TK"`
	NoOfDigits      int    `envconfig:"EVENT_TICKET_DIGITS" default:"6"`
	MaxNoOfTickets  int    `envconfig:"EVENT_MAX_TICKETS" default:"500"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type RateLimitConfig struct {
	Enabled        bool          `envconfig:"RATE_LIMIT_ENABLED" default:"false"`
	Capacity       int           `envconfig:"RATE_LIMIT_CAPACITY" default:"30"`
	RefillTokens   int           `envconfig:"RATE_LIMIT_REFILL_TOKENS" default:"1"`
	RefillInterval time.Duration `envconfig:"RATE_LIMIT_REFILL_INTERVAL" default:"1s"`
	TTL            time.Duration `envconfig:"RATE_LIMIT_TTL" default:"10m"`
	Prefix         string        `envconfig:"RATE_LIMIT_PREFIX" default:"rl:checkin"`
}

type AMQPConfig struct {
	URL      string `envconfig:"AMQP_URL"`
	Exchange string `envconfig:"AMQP_EXCHANGE" default:"reservations"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverMemory:
		return nil
	case StoreDriverPostgres:
		if c.DB.User == "" || c.DB.DBName == "" {
			return errors.New("DB_USER and DB_NAME are required for the postgres store")
		}
		return nil
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Store: StoreConfig{
			Driver:      StoreDriverMemory,
			AutoMigrate: true,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Colombo",
			MaxConns: 20,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Colombo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 19800,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Bootstrap: BootstrapConfig{
			AdminUsername:    "admin",
			AdminPassword:    "admin123",
			EntranceUsername: "entrance",
			EntrancePassword: "entrance123",
		},
		Event: EventConfig{
			Name:            "Test Event",
			Venue:           "Test Venue",
			TableSize:       120,
			SeatSize:        30,
			NoOfColumns:     6,
			BaseImageWidth:  800,
			BaseImageHeight: 600,
			FontSize:        28,
			QRX:             40,
			QRY:             40,
			TextX:           420,
			TextY:           60,
			TicketPrefix:    "TK",
			NoOfDigits:      4,
			MaxNoOfTickets:  20,
		},
		RateLimit: RateLimitConfig{
			Capacity:       30,
			RefillTokens:   1,
			RefillInterval: time.Second,
			TTL:            10 * time.Minute,
			Prefix:         "rl:test",
		},
	}
}

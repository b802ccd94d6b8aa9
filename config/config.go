package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds application configuration loaded from environment variables.
// Every key has a default suitable for local development.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// DBDriver selects the store: postgres, or memory for demos and tests.
	DBDriver string

	// Database; DatabaseURL wins over the individual parts when set.
	DatabaseURL   string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBMaxConns    int32
	DBMinConns    int32
	DBMaxConnLife time.Duration

	MigrationsDir string

	JWTSecret string
	JWTTTL    time.Duration

	// Redis backs the login rate limiter; empty RedisAddr disables it.
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	LoginRateLimit int // attempts per minute per IP
	TrustProxy     bool

	CORSAllowedOrigins string // comma-separated

	// Uploaded project images
	StorageDriver      string // disk or gcs
	StorageDir         string
	UploadMaxBytes     int64
	GCSBucket          string
	GCSCredentialsJSON string // optional; Application Default Credentials otherwise

	// Elasticsearch project search; empty addrs disables indexing.
	ElasticsearchAddrs string // comma-separated
	ElasticsearchUser  string
	ElasticsearchPass  string
	ESProjectsIndex    string

	// Login notifications
	RabbitMQURL        string
	RabbitMQEmailQueue string
	MailgunDomain      string
	MailgunAPIKey      string
	MailgunSender      string
	MailSendEnabled    bool
	AdminNotifyEmail   string

	MetricsEnabled bool
	HTTPLogEnabled bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			logrus.Warnf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			logrus.Warnf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			logrus.Warnf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load reads .env when present, then the environment.
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the config from the process environment only.
func FromEnv() *Config {
	return &Config{
		AppName: getenv("APP_NAME", "portfolio-api"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "8080"),
		GinMode: getenv("GIN_MODE", "release"),

		DBDriver: getenv("DB_DRIVER", "postgres"),

		DatabaseURL:   getenv("DATABASE_URL", ""),
		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "5432"),
		DBUser:        getenv("DB_USER", "postgres"),
		DBPassword:    getenv("DB_PASSWORD", "postgres"),
		DBName:        getenv("DB_NAME", "portfolio"),
		DBSSLMode:     getenv("DB_SSLMODE", "disable"),
		DBMaxConns:    int32(getint("DB_MAX_CONNS", 10)),
		DBMinConns:    int32(getint("DB_MIN_CONNS", 2)),
		DBMaxConnLife: getdur("DB_MAX_CONN_LIFETIME", time.Hour),

		MigrationsDir: getenv("MIGRATIONS_DIR", "db/migrations"),

		JWTSecret: getenv("JWT_SECRET", "devtopsecret"),
		JWTTTL:    getdur("JWT_TTL", 2*time.Hour),

		RedisAddr:      getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getenv("REDIS_PASSWORD", ""),
		RedisDB:        getint("REDIS_DB", 0),
		LoginRateLimit: getint("LOGIN_RATE_LIMIT", 10),
		TrustProxy:     getbool("TRUST_PROXY", false),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),

		StorageDriver:      getenv("STORAGE_DRIVER", "disk"),
		StorageDir:         getenv("STORAGE_DIR", "storage"),
		UploadMaxBytes:     int64(getint("UPLOAD_MAX_BYTES", 4<<20)),
		GCSBucket:          getenv("GCS_BUCKET", ""),
		GCSCredentialsJSON: getenv("GCS_CREDENTIALS_JSON", ""),

		ElasticsearchAddrs: getenv("ELASTICSEARCH_ADDRS", ""),
		ElasticsearchUser:  getenv("ELASTICSEARCH_USERNAME", ""),
		ElasticsearchPass:  getenv("ELASTICSEARCH_PASSWORD", ""),
		ESProjectsIndex:    getenv("ES_PROJECTS_INDEX", "projects"),

		RabbitMQURL:        getenv("RABBITMQ_URL", ""),
		RabbitMQEmailQueue: getenv("RABBITMQ_EMAIL_QUEUE", "emails"),
		MailgunDomain:      getenv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey:      getenv("MAILGUN_API_KEY", ""),
		MailgunSender:      getenv("MAILGUN_SENDER", ""),
		MailSendEnabled:    getbool("MAIL_SEND_ENABLED", false),
		AdminNotifyEmail:   getenv("ADMIN_NOTIFY_EMAIL", ""),

		MetricsEnabled: getbool("METRICS_ENABLED", true),
		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),
	}
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

// PostgresDSN returns a DSN compatible with pgx.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=" + c.DBSSLMode
}

// CORSOrigins returns the allowed origins as slice.
func (c *Config) CORSOrigins() []string { return splitList(c.CORSAllowedOrigins) }

// ESAddrs returns Elasticsearch addresses as a slice.
func (c *Config) ESAddrs() []string { return splitList(c.ElasticsearchAddrs) }

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}

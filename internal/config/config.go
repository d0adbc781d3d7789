package config

import "time"

// Config es la configuración raíz. Prioridad: ENV > YAML > env-default.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Blob     BlobConfig     `yaml:"blob"`
	Billing  BillingConfig  `yaml:"billing"`
	Log      LogConfig      `yaml:"log"`
	Jobs     JobsConfig     `yaml:"jobs"`
	Seed     SeedConfig     `yaml:"seed"`
	Phone    PhoneConfig    `yaml:"phone"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"PORT"                    env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig: DSN vacío => repos in-memory.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"               env:"DB_DSN"`
	MaxOpenConns    int           `yaml:"max_open_conns"    env:"DB_MAX_OPEN_CONNS"    env-default:"10"`
	MaxIdleConns    int           `yaml:"max_idle_conns"    env:"DB_MAX_IDLE_CONNS"    env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"      env:"DB_AUTO_MIGRATE"      env-default:"true"`
}

// RedisConfig: Addr vacío => lock y secuencia de facturas en el store principal.
type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB" env-default:"0"`
}

// AuthConfig: sin JWTSecret el servicio corre en modo dev (header X-Debug-User-ID).
type AuthConfig struct {
	JWTSecret       string        `yaml:"jwt_secret"        env:"AUTH_JWT_SECRET"`
	JWTIssuer       string        `yaml:"jwt_issuer"        env:"AUTH_JWT_ISSUER"        env-default:"equine-clinic"`
	TokenTTL        time.Duration `yaml:"token_ttl"         env:"AUTH_TOKEN_TTL"         env-default:"12h"`
	HostedURL       string        `yaml:"hosted_url"        env:"AUTH_HOSTED_URL"`
	HostedAPIKey    string        `yaml:"hosted_api_key"    env:"AUTH_HOSTED_API_KEY"`
	HostedTimeout   time.Duration `yaml:"hosted_timeout"    env:"AUTH_HOSTED_TIMEOUT"    env-default:"5s"`
	DefaultClinicID string        `yaml:"default_clinic_id" env:"AUTH_DEFAULT_CLINIC_ID" env-default:"default"`
}

func (c AuthConfig) DevMode() bool { return c.JWTSecret == "" }

type BlobConfig struct {
	Driver      string        `yaml:"driver"       env:"BLOB_DRIVER"        env-default:"memory"`
	S3Bucket    string        `yaml:"s3_bucket"    env:"BLOB_S3_BUCKET"`
	S3Region    string        `yaml:"s3_region"    env:"BLOB_S3_REGION"     env-default:"us-east-1"`
	S3Endpoint  string        `yaml:"s3_endpoint"  env:"BLOB_S3_ENDPOINT"`
	S3PathStyle bool          `yaml:"s3_path_style" env:"BLOB_S3_PATH_STYLE" env-default:"false"`
	PresignTTL  time.Duration `yaml:"presign_ttl"  env:"BLOB_PRESIGN_TTL"   env-default:"15m"`
	MaxUpload   int64         `yaml:"max_upload"   env:"BLOB_MAX_UPLOAD"    env-default:"10485760"`
}

type BillingConfig struct {
	TaxRate float64 `yaml:"tax_rate" env:"BILLING_TAX_RATE" env-default:"16"`
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
	App    string `yaml:"app"    env:"APP_NAME"   env-default:"equine-clinic"`
}

// JobsConfig: expresiones cron (5 campos). Vacío => job deshabilitado.
type JobsConfig struct {
	ReconcileCron string `yaml:"reconcile_cron" env:"JOBS_RECONCILE_CRON"`
	LowStockCron  string `yaml:"low_stock_cron" env:"JOBS_LOW_STOCK_CRON"`
}

type SeedConfig struct {
	OnStart       bool   `yaml:"on_start"       env:"SEED_ON_START"       env-default:"false"`
	ClinicName    string `yaml:"clinic_name"    env:"SEED_CLINIC_NAME"    env-default:"Equinmedical Group"`
	AdminEmail    string `yaml:"admin_email"    env:"SEED_ADMIN_EMAIL"    env-default:"admin@equinmedical.com"`
	AdminPassword string `yaml:"admin_password" env:"SEED_ADMIN_PASSWORD"`
}

type PhoneConfig struct {
	Region string `yaml:"region" env:"PHONE_REGION" env-default:"VE"`
}

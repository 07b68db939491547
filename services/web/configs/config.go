package configs

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/nimeshabuddhika/creditpath-web/pkg/utils"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Config holds application configuration for the web client.
type Config struct {
	Port                         string        `mapstructure:"PORT" validate:"required"`
	BackendBaseURL               string        `mapstructure:"BACKEND_BASE_URL" validate:"required,url"`
	BackendResponseHeaderTimeout time.Duration `mapstructure:"BACKEND_RESPONSE_HEADER_TIMEOUT" validate:"required"`
	BackendRateLimitPerSec       int           `mapstructure:"BACKEND_RATE_LIMIT_PER_SEC" validate:"min=0"`
	BackendRequestBurst          int           `mapstructure:"BACKEND_REQUEST_BURST" validate:"min=1"`
	BackendMaxThrottleWait       time.Duration `mapstructure:"BACKEND_MAX_THROTTLE_WAIT" validate:"required"` // fail fast when a limiter token is further away than this
	BackendProbeMaxWait          time.Duration `mapstructure:"BACKEND_PROBE_MAX_WAIT" validate:"min=0"`
	SessionStore                 string        `mapstructure:"SESSION_STORE" validate:"oneof=memory redis"`
	SessionTTL                   time.Duration `mapstructure:"SESSION_TTL" validate:"min=0"`
	RedisAddr                    string        `mapstructure:"REDIS_ADDR" validate:"required_if=SessionStore redis"`
	RedisPassword                string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB                      int           `mapstructure:"REDIS_DB" validate:"min=0"`
	CookieSecure                 bool          `mapstructure:"COOKIE_SECURE"`
	BusyTTL                      time.Duration `mapstructure:"BUSY_TTL" validate:"required"`
}

func Load(logger *zap.Logger) (*Config, error) {
	viper.SetEnvPrefix("app") // Prefix for env vars
	viper.AutomaticEnv()

	// Default values
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("BACKEND_BASE_URL", "http://127.0.0.1:8000")
	viper.SetDefault("BACKEND_RESPONSE_HEADER_TIMEOUT", "60s")
	viper.SetDefault("BACKEND_RATE_LIMIT_PER_SEC", "0")
	viper.SetDefault("BACKEND_REQUEST_BURST", "5")
	viper.SetDefault("BACKEND_MAX_THROTTLE_WAIT", "2s")
	viper.SetDefault("BACKEND_PROBE_MAX_WAIT", "10s")
	viper.SetDefault("SESSION_STORE", SessionStoreMemory)
	viper.SetDefault("SESSION_TTL", "0s")
	viper.SetDefault("REDIS_DB", "0")
	viper.SetDefault("COOKIE_SECURE", "false")
	viper.SetDefault("BUSY_TTL", "2m")

	// Optional: Read from config.<mode>.yaml if exists
	if gin.ReleaseMode == gin.Mode() {
		viper.SetConfigName("config.prod")
	} else if gin.TestMode == gin.Mode() {
		logger.Warn("running_in_test_mode")
		viper.SetConfigName("config.test")
	} else {
		logger.Warn("running_in_development_mode")
		viper.SetConfigName("config.dev")
	}
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./services/web/configs")
	_ = viper.ReadInConfig() // Ignore if no file

	var cfg Config
	if err := utils.ParseStructEnv(&cfg); err != nil {
		return nil, err
	}

	// Validate after unmarshal
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, utils.FormatConfigErrors(logger, err, cfg)
	}
	return &cfg, nil
}

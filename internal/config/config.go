package config

import (
	"errors"
	"time"
)

// Config 应用配置根结构
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	AI      AIConfig      `mapstructure:"ai"`
	Log     LogConfig     `mapstructure:"log"`
	Mongo   MongoConfig   `mapstructure:"mongo"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CORSOrigins  []string      `mapstructure:"cors_origins"` // 为空表示允许任意来源
}

// AIConfig AI 服务配置
// APIKey 为空时不会调用远程模型，标签/摘要全部走本地兜底算法
type AIConfig struct {
	Provider string          `mapstructure:"provider"` // gemini/openai/azure/ark
	APIKey   string          `mapstructure:"api_key"`
	Model    string          `mapstructure:"model"`
	BaseURL  string          `mapstructure:"base_url"`
	Timeout  time.Duration   `mapstructure:"timeout"` // 0 表示使用底层 transport 默认值
	Options  AIOptionsConfig `mapstructure:"options"`

	// 远程调用限制，超出时直接走兜底；0 表示不限制
	MaxConcurrent int64   `mapstructure:"max_concurrent"`
	RateLimit     float64 `mapstructure:"rate_limit"` // 每秒远程调用数
	RateBurst     int     `mapstructure:"rate_burst"`
}

// AIOptionsConfig AI 模型参数
type AIOptionsConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	TopK        int     `mapstructure:"top_k"`
	TopP        float64 `mapstructure:"top_p"`
}

// Enabled 是否配置了远程模型凭证
func (c *AIConfig) Enabled() bool {
	return c.APIKey != ""
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// MongoConfig MongoDB 配置
type MongoConfig struct {
	URI         string `mapstructure:"uri"`
	Database    string `mapstructure:"database"`
	MaxPoolSize uint64 `mapstructure:"max_pool_size"`
	MinPoolSize uint64 `mapstructure:"min_pool_size"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	PostTTL  time.Duration `mapstructure:"post_ttl"` // 单篇文章缓存时间
}

// AuthConfig 认证配置
type AuthConfig struct {
	JWTSecret          string        `mapstructure:"jwt_secret"`           // JWT密钥
	AccessTokenExpiry  time.Duration `mapstructure:"access_token_expiry"`  // Access Token过期时间
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_token_expiry"` // Refresh Token过期时间
}

// MetricsConfig Prometheus 指标配置
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

var validProviders = map[string]bool{
	"":       true,
	"gemini": true,
	"openai": true,
	"azure":  true,
	"ark":    true,
}

// Validate 验证配置有效性
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	if !validProviders[c.AI.Provider] {
		return errors.New("invalid ai provider, must be gemini/openai/azure/ark")
	}

	if c.AI.Timeout < 0 {
		return errors.New("ai timeout must not be negative")
	}

	if c.AI.MaxConcurrent < 0 || c.AI.RateLimit < 0 || c.AI.RateBurst < 0 {
		return errors.New("ai limits must not be negative")
	}

	return nil
}

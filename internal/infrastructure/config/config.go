package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App      AppConfig     `mapstructure:"app"`
	Server   ServerConfig  `mapstructure:"server"`
	Rakuten  RakutenConfig `mapstructure:"rakuten"`
	Auth     AuthConfig    `mapstructure:"auth"`
	LogLevel string        `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// RakutenConfig 樂天市場商品搜尋 API 配置
// ApplicationID 或 AffiliateID 缺漏時搜尋降級為空結果，不視為錯誤
type RakutenConfig struct {
	ApplicationID string        `mapstructure:"application_id"`
	AffiliateID   string        `mapstructure:"affiliate_id"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RetryCount    int           `mapstructure:"retry_count"`
	RetryWait     time.Duration `mapstructure:"retry_wait"`
	Hits          int           `mapstructure:"hits"`
	MinReviewAvg  float64       `mapstructure:"min_review_avg"`
}

// AuthConfig 入站認證配置；BearerToken 為空時不做認證檢查
type AuthConfig struct {
	BearerToken string `mapstructure:"bearer_token"`
}

// Configured 判斷樂天 API 憑證是否齊全
func (c RakutenConfig) Configured() bool {
	return c.ApplicationID != "" && c.AffiliateID != ""
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件（部署環境可能沒有，忽略缺檔）
	_ = godotenv.Load()

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量（沿用原部署的變數名稱）
	viper.BindEnv("rakuten.application_id", "RAKUTEN_APPLICATION_ID")
	viper.BindEnv("rakuten.affiliate_id", "RAKUTEN_AFFILIATE_ID")
	viper.BindEnv("auth.bearer_token", "GPTS_ACTIONS_BEARER")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// MaskSecret 遮罩機密字串，只顯示前後各 4 個字符
func MaskSecret(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "cooking-tools-recommender")

	// 伺服器設定
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// 樂天 API 設定
	viper.SetDefault("rakuten.timeout", "10s")
	viper.SetDefault("rakuten.retry_count", 2) // 首次請求加重試共 3 次
	viper.SetDefault("rakuten.retry_wait", "500ms")
	viper.SetDefault("rakuten.hits", 10)
	viper.SetDefault("rakuten.min_review_avg", 4.0)
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證樂天 API 設定
	if config.Rakuten.Timeout <= 0 {
		return fmt.Errorf("invalid rakuten timeout")
	}
	if config.Rakuten.RetryCount < 0 {
		return fmt.Errorf("invalid rakuten retry count")
	}
	if config.Rakuten.Hits <= 0 {
		return fmt.Errorf("invalid rakuten hits")
	}

	return nil
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，如 PRINTSHOP_MAIL_DRIVER
const EnvPrefix = "PRINTSHOP"

// Config 全局配置
type Config struct {
	App     AppConfig      `mapstructure:"app"`
	Redis   RedisConfig    `mapstructure:"redis"`
	Lmstfy  LmstfyConfig   `mapstructure:"lmstfy"`
	Mail    MailConfig     `mapstructure:"mail"`
	Workers []WorkerConfig `mapstructure:"workers"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig Redis 配置，未启用时不发布投递事件
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LmstfyConfig Lmstfy 配置
type LmstfyConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Namespace string `mapstructure:"namespace"`
	Token     string `mapstructure:"token"`
}

// MailConfig 邮件配置，driver 为 log 或 smtp
type MailConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	ShopName string `mapstructure:"shop_name"`
}

// WorkerConfig Worker 配置
type WorkerConfig struct {
	Name       string           `mapstructure:"name"`
	QueueName  string           `mapstructure:"queue_name"`
	Subscriber SubscriberConfig `mapstructure:"subscriber"`
	Processor  ProcessorConfig  `mapstructure:"processor"`
}

// SubscriberConfig Subscriber 配置
type SubscriberConfig struct {
	Threads      int           `mapstructure:"threads"`       // 并发拉取数
	Rate         time.Duration `mapstructure:"rate"`          // 拉取间隔
	Timeout      time.Duration `mapstructure:"timeout"`       // 拉取超时
	TTR          time.Duration `mapstructure:"ttr"`           // Time-To-Run
	ErrorBackoff time.Duration `mapstructure:"error_backoff"` // 错误退避时间
}

// ProcessorConfig Processor 配置
type ProcessorConfig struct {
	Threads    int           `mapstructure:"threads"`     // 并发处理数
	BufferSize int           `mapstructure:"buffer_size"` // Channel 缓冲大小
	Timeout    time.Duration `mapstructure:"timeout"`     // 单个任务超时
}

// Load 加载配置文件，环境变量优先
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetDefault("app.name", "printshop-notifier")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("lmstfy.port", 7777)
	v.SetDefault("mail.driver", "log")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.shop_name", "Print Shop")
	v.SetDefault("redis.enabled", false)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config failed: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}
	return &cfg, nil
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}
	if c.Lmstfy.Host == "" {
		return fmt.Errorf("lmstfy.host is required")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required when redis is enabled")
	}
	switch c.Mail.Driver {
	case "log":
	case "smtp":
		if c.Mail.Host == "" || c.Mail.From == "" {
			return fmt.Errorf("mail.host and mail.from are required for the smtp driver")
		}
	default:
		return fmt.Errorf("unknown mail.driver %q", c.Mail.Driver)
	}
	if len(c.Workers) == 0 {
		return fmt.Errorf("at least one worker is required")
	}
	for _, w := range c.Workers {
		if w.QueueName == "" {
			return fmt.Errorf("worker %q: queue_name is required", w.Name)
		}
		if w.Subscriber.Threads <= 0 || w.Processor.Threads <= 0 {
			return fmt.Errorf("worker %q: subscriber and processor threads must be positive", w.Name)
		}
		if w.Subscriber.TTR <= 0 {
			return fmt.Errorf("worker %q: subscriber.ttr must be positive", w.Name)
		}
		if w.Processor.BufferSize < 0 {
			return fmt.Errorf("worker %q: processor.buffer_size must not be negative", w.Name)
		}
	}
	return nil
}

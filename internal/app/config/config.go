package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"printshop/internal/app/domains/tools/resolution"
)

// EnvPrefix 环境变量前缀，如 PRINTSHOP_SERVER_PORT
const EnvPrefix = "PRINTSHOP"

// Config 应用配置
type Config struct {
	App       AppConfig         `mapstructure:"app"`
	Server    ServerConfig      `mapstructure:"server"`
	Catalog   CatalogConfig     `mapstructure:"catalog"`
	Preflight resolution.Limits `mapstructure:"preflight"`
	Storage   StorageConfig     `mapstructure:"storage"`
	Notify    NotifyConfig      `mapstructure:"notify"`
	Lmstfy    LmstfyConfig      `mapstructure:"lmstfy"`
	Redis     RedisConfig       `mapstructure:"redis"`
}

type AppConfig struct {
	Name      string `mapstructure:"name"`
	Env       string `mapstructure:"env"`
	LogLevel  string `mapstructure:"log_level"`
	MachineID int64  `mapstructure:"machine_id"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	MaxUploadMB     int64         `mapstructure:"max_upload_mb"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

type StorageConfig struct {
	UploadDir string `mapstructure:"upload_dir"`
}

// NotifyConfig 订单受理通知；关闭时只写日志
type NotifyConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Queue   string        `mapstructure:"queue"`
	TTL     time.Duration `mapstructure:"ttl"`
	Tries   uint16        `mapstructure:"tries"`
}

type LmstfyConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Namespace string `mapstructure:"namespace"`
	Token     string `mapstructure:"token"`
}

// RedisConfig 订阅通知投递事件（Smart Wait）；关闭时 wait_seconds 不生效
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// MaxUploadBytes 上传大小上限（字节）
func (c *Config) MaxUploadBytes() int64 {
	return c.Server.MaxUploadMB << 20
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "printshop-apiserver")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.machine_id", 1)
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.max_upload_mb", 50)
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("catalog.path", "config/catalog.yaml")
	v.SetDefault("preflight.max_pixels_per_side", 30000)
	v.SetDefault("preflight.max_megapixels", 300)
	v.SetDefault("preflight.max_pdf_pages", 50)
	v.SetDefault("preflight.pdf_render_dpi", 300)
	v.SetDefault("storage.upload_dir", "uploads")
	v.SetDefault("notify.enabled", false)
	v.SetDefault("notify.queue", "order_notify")
	v.SetDefault("notify.ttl", "24h")
	v.SetDefault("notify.tries", 3)
	v.SetDefault("lmstfy.host", "")
	v.SetDefault("lmstfy.port", 7777)
	v.SetDefault("lmstfy.namespace", "printshop")
	v.SetDefault("lmstfy.token", "")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
}

// Load 从配置文件加载配置，环境变量优先
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config failed: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}
	return &cfg, nil
}

// LoadDefault 加载默认配置文件路径
func LoadDefault() (*Config, error) {
	return Load("config/apiserver.yaml")
}

// Validate 验证配置完整性
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server max_upload_mb must be positive")
	}
	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog path is required")
	}
	if c.Storage.UploadDir == "" {
		return fmt.Errorf("storage upload_dir is required")
	}
	if c.Notify.Enabled {
		if c.Notify.Queue == "" {
			return fmt.Errorf("notify queue is required")
		}
		if c.Lmstfy.Host == "" {
			return fmt.Errorf("lmstfy host is required when notify is enabled")
		}
		if c.Lmstfy.Token == "" {
			return fmt.Errorf("lmstfy token is required when notify is enabled")
		}
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis addr is required when redis is enabled")
	}
	return nil
}

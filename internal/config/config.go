package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// 主配置结构
type Config struct {
	App       App       `yaml:"app"`
	Server    Server    `yaml:"server"`
	Database  DB        `yaml:"database"`
	Cache     Cache     `yaml:"cache"`
	Log       Log       `yaml:"log"`
	ShortCode ShortCode `yaml:"shortcode"`
	Expiry    Expiry    `yaml:"expiry"`
	CORS      CORS      `yaml:"cors"`
}

// 应用配置
type App struct {
	Name    string `yaml:"name"`
	Mode    string `yaml:"mode"`
	Version string `yaml:"version"`
}

// 服务器配置
type Server struct {
	Port            int `yaml:"port"`
	ReadTimeout     int `yaml:"read_timeout"`
	WriteTimeout    int `yaml:"write_timeout"`
	ShutdownTimeout int `yaml:"shutdown_timeout"`
}

// 数据库配置，driver 可选 mysql / postgres / sqlite / memory
type DB struct {
	Driver          string `yaml:"driver"`
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	Name            string `yaml:"name"`
	SSLMode         string `yaml:"sslmode"`
	Path            string `yaml:"path"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"`
}

// 缓存配置（Redis），Host 为空时使用进程内缓存
type Cache struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	TTLSeconds int    `yaml:"ttl_seconds"`
	PoolSize   int    `yaml:"pool_size"`
}

// 日志配置
type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

// 短码配置，随机短码长度固定为 5
type ShortCode struct {
	MaxAttempts int `yaml:"max_attempts"`
}

// 过期与清理配置
type Expiry struct {
	DefaultMinutes   int     `yaml:"default_minutes"`
	SweepEnabled     bool    `yaml:"sweep_enabled"`
	SweepInterval    int     `yaml:"sweep_interval"`
	SweepGrace       int     `yaml:"sweep_grace"`
	SweepBatchSize   int     `yaml:"sweep_batch_size"`
	SweepBatchesPerS float64 `yaml:"sweep_batches_per_second"`
}

// 跨域配置
type CORS struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

func (e Expiry) DefaultValidity() time.Duration {
	return time.Duration(e.DefaultMinutes) * time.Minute
}

func (c Cache) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		App: App{Name: "shorturl-service", Mode: "debug", Version: "dev"},
		Server: Server{
			Port:            8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			ShutdownTimeout: 15,
		},
		Database: DB{
			Driver:          "sqlite",
			Path:            "data/shorturl.db",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 1800,
		},
		Cache: Cache{Port: 6379, TTLSeconds: 3600, PoolSize: 20},
		Log: Log{
			Level:      "info",
			File:       "./logs/app.log",
			MaxSize:    10,
			MaxBackups: 5,
			MaxAge:     30,
		},
		ShortCode: ShortCode{MaxAttempts: 5},
		Expiry: Expiry{
			DefaultMinutes:   30,
			SweepEnabled:     true,
			SweepInterval:    60,
			SweepGrace:       0,
			SweepBatchSize:   500,
			SweepBatchesPerS: 5,
		},
	}
}

// Load 加载配置，未出现的字段保持默认值
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查配置是否可用
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port 非法: %d", c.Server.Port))
	}
	switch c.Database.Driver {
	case "mysql", "postgres":
		if c.Database.Host == "" || c.Database.Name == "" {
			errs = append(errs, fmt.Errorf("database.driver=%s 需要 host 和 name", c.Database.Driver))
		}
	case "sqlite":
		if c.Database.Path == "" {
			errs = append(errs, errors.New("database.driver=sqlite 需要 path"))
		}
	case "memory":
	default:
		errs = append(errs, fmt.Errorf("不支持的数据库驱动: %q", c.Database.Driver))
	}
	if c.ShortCode.MaxAttempts <= 0 {
		errs = append(errs, errors.New("shortcode.max_attempts 必须大于 0"))
	}
	if c.Expiry.DefaultMinutes <= 0 {
		errs = append(errs, errors.New("expiry.default_minutes 必须大于 0"))
	}
	if c.Expiry.SweepEnabled && c.Expiry.SweepInterval <= 0 {
		errs = append(errs, errors.New("expiry.sweep_interval 必须大于 0"))
	}
	return errors.Join(errs...)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// DefaultJWTSecret 默认签名密钥,release模式下使用signed登录门时必须修改
const DefaultJWTSecret = "bookhub-dev-secret-change-in-production"

// 登录门模式
const (
	AuthModeFlag   = "flag"   // Cookie值为"1"即视为已登录
	AuthModeSigned = "signed" // Cookie中为签名Token
)

// Config 全局配置结构
// 设计说明：使用Viper管理配置，支持YAML文件、环境变量覆盖；所有字段在代码中有默认值，没有配置文件也能启动
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug | release | test
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Swagger         bool          `mapstructure:"swagger"` // 是否暴露/swagger
}

// Addr 返回监听地址
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type CatalogConfig struct {
	FixturePath string         `mapstructure:"fixture_path"` // 为空使用内置数据集
	Locale      string         `mapstructure:"locale"`       // 字符串排序使用的语言规则(BCP 47)
	PageSize    PageSizeConfig `mapstructure:"page_size"`
}

// LocaleTag 解析排序语言
func (c CatalogConfig) LocaleTag() (language.Tag, error) {
	return language.Parse(c.Locale)
}

type PageSizeConfig struct {
	Books      int `mapstructure:"books"`
	Authors    int `mapstructure:"authors"`
	Publishers int `mapstructure:"publishers"`
	Detail     int `mapstructure:"detail"` // 作者、出版社详情页中图书列表的每页数量
}

type AuthConfig struct {
	Mode         string        `mapstructure:"mode"` // flag | signed
	CookieName   string        `mapstructure:"cookie_name"`
	CookieMaxAge time.Duration `mapstructure:"cookie_max_age"`
	Secret       string        `mapstructure:"secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
}

type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"` // 只在signed模式下用于Token吊销列表
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr 返回Redis地址
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type LogConfig struct {
	Level        string `mapstructure:"level"`  // debug | info | warn | error
	Format       string `mapstructure:"format"` // console | json
	Output       string `mapstructure:"output"` // stdout | stderr | /path/to/file
	EnableCaller bool   `mapstructure:"enable_caller"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	ServiceName string  `mapstructure:"service_name"`
	Endpoint    string  `mapstructure:"endpoint"` // OTLP gRPC host:port
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

// setDefaults 注册默认值
// 与原站点保持一致:图书、作者每页6条,出版社每页8条
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.swagger", true)

	v.SetDefault("catalog.fixture_path", "")
	v.SetDefault("catalog.locale", "en")
	v.SetDefault("catalog.page_size.books", 6)
	v.SetDefault("catalog.page_size.authors", 6)
	v.SetDefault("catalog.page_size.publishers", 8)
	v.SetDefault("catalog.page_size.detail", 6)

	v.SetDefault("auth.mode", AuthModeFlag)
	v.SetDefault("auth.cookie_name", "bookhub_auth")
	v.SetDefault("auth.cookie_max_age", 7*24*time.Hour)
	v.SetDefault("auth.secret", DefaultJWTSecret)
	v.SetDefault("auth.token_ttl", 7*24*time.Hour)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.enable_caller", true)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "bookhub")
	v.SetDefault("tracing.endpoint", "localhost:4317")
	v.SetDefault("tracing.sample_ratio", 1.0)
}

// Load 加载配置
// 支持：
// 1. file非空时只读取该文件(不存在即报错)
// 2. 否则在./config和当前目录查找config.yaml；通过BOOKHUB_ENV指定环境（如config.prod.yaml）；找不到文件时使用默认值
// 3. 环境变量覆盖（如BOOKHUB_SERVER_PORT → server.port）
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		if env := os.Getenv("BOOKHUB_ENV"); env != "" {
			v.SetConfigName("config." + env)
		}
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	// 环境变量绑定（嵌套键的"."替换为"_"）
	v.SetEnvPrefix("BOOKHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate 配置校验
func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("无效的服务端口: %d", cfg.Server.Port)
	}

	sizes := map[string]int{
		"books":      cfg.Catalog.PageSize.Books,
		"authors":    cfg.Catalog.PageSize.Authors,
		"publishers": cfg.Catalog.PageSize.Publishers,
		"detail":     cfg.Catalog.PageSize.Detail,
	}
	for name, size := range sizes {
		if size < 1 {
			return fmt.Errorf("catalog.page_size.%s必须为正数: %d", name, size)
		}
	}

	if _, err := cfg.Catalog.LocaleTag(); err != nil {
		return fmt.Errorf("无效的catalog.locale %q: %w", cfg.Catalog.Locale, err)
	}

	switch cfg.Auth.Mode {
	case AuthModeFlag:
	case AuthModeSigned:
		if cfg.Auth.Secret == "" {
			return fmt.Errorf("signed模式必须配置auth.secret")
		}
		if cfg.Auth.Secret == DefaultJWTSecret && cfg.Server.Mode == "release" {
			return fmt.Errorf("生产环境必须修改auth.secret")
		}
		if cfg.Auth.TokenTTL <= 0 {
			return fmt.Errorf("auth.token_ttl必须为正数")
		}
	default:
		return fmt.Errorf("未知的auth.mode: %s", cfg.Auth.Mode)
	}

	if cfg.Auth.CookieName == "" {
		return fmt.Errorf("auth.cookie_name不能为空")
	}

	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing.sample_ratio必须在[0,1]之间: %v", cfg.Tracing.SampleRatio)
	}

	return nil
}

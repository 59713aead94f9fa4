// config предоставляет структуру конфигурации reverb-scraper
// и функции загрузки из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load (флаг --config);
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	Reverb   ReverbConfig  `yaml:"reverb"`
	Dump     DumpConfig    `yaml:"dump"`
	DB       DBConfig      `yaml:"db"`
	S3       S3Config      `yaml:"s3"`
	Metrics  MetricsConfig `yaml:"metrics"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
}

// ReverbConfig — параметры API Reverb и карта категорий.
type ReverbConfig struct {
	BaseURL   string        `yaml:"base_url"   env:"REVERB_BASE_URL"   env-default:"https://api.reverb.com/api/"`
	Source    string        `yaml:"source"     env:"REVERB_SOURCE"     env-default:"reverb"`
	Timeout   time.Duration `yaml:"timeout"    env:"REVERB_TIMEOUT"    env-default:"60s"`
	UserAgent string        `yaml:"user_agent" env:"REVERB_USER_AGENT" env-default:"reverb-scraper/1.0"`
	// 0 — все страницы (total_pages / 50), N > 0 — страницы 1..N.
	PageLimit int `yaml:"page_limit" env:"REVERB_PAGE_LIMIT" env-default:"0"`
	// Ключ категории -> UUID категории Reverb.
	// ENV: REVERB_CATEGORIES="acoustic_guitars:3ca3...,electric_guitars:dfd3...".
	Categories map[string]string `yaml:"categories" env:"REVERB_CATEGORIES" env-separator:","`
}

// DumpConfig — каталог для JSON-дампов.
type DumpConfig struct {
	Dir string `yaml:"dir" env:"DUMP_DIR" env-default:"dumps"`
}

// DBConfig — подключение к PostgreSQL. Нужно только командам работы с инструментами.
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL"`
}

// S3Config — объектное хранилище для дампов. Пустой Endpoint отключает загрузку.
type S3Config struct {
	Endpoint     string `yaml:"endpoint"      env:"S3_ENDPOINT"`
	RootUser     string `yaml:"root_user"     env:"MINIO_ROOT_USER"`
	RootPassword string `yaml:"root_password" env:"MINIO_ROOT_PASSWORD"`
	Bucket       string `yaml:"bucket"        env:"S3_BUCKET"        env-default:"dumps"`
	Prefix       string `yaml:"prefix"        env:"S3_PREFIX"        env-default:"reverb"`
}

// Enabled сообщает, настроена ли загрузка в S3.
func (s S3Config) Enabled() bool {
	return s.Endpoint != ""
}

// MetricsConfig — отправка метрик в Prometheus Pushgateway. Пустой PushURL отключает отправку.
type MetricsConfig struct {
	PushURL string `yaml:"push_url" env:"METRICS_PUSH_URL"`
	Job     string `yaml:"job"      env:"METRICS_JOB"      env-default:"reverb_scraper"`
}

// TimeoutConfig — таймауты внешних зависимостей.
type TimeoutConfig struct {
	DB   time.Duration `yaml:"db"   env:"DB_TIMEOUT"   env-default:"10s"`
	S3   time.Duration `yaml:"s3"   env:"S3_TIMEOUT"   env-default:"30s"`
	Push time.Duration `yaml:"push" env:"PUSH_TIMEOUT" env-default:"10s"`
}

// DefaultCategories — категории Reverb, используемые, если карта не задана.
func DefaultCategories() map[string]string {
	return map[string]string{
		"acoustic_guitars": "3ca3eb03-7eac-477d-b253-15ce603d2550",
		"electric_guitars": "dfd39027-d134-4353-b9e4-57dc6be791b9",
	}
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	switch {
	case path != "":
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	case fileExists("local.yaml"):
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
		}
	}

	if len(cfg.Reverb.Categories) == 0 {
		cfg.Reverb.Categories = DefaultCategories()
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	u, err := url.Parse(c.Reverb.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("reverb.base_url must be an absolute URL")
	}
	if c.Reverb.Source == "" {
		return fmt.Errorf("reverb.source is required")
	}
	if c.Reverb.Timeout <= 0 {
		return fmt.Errorf("reverb.timeout must be > 0")
	}
	if c.Reverb.PageLimit < 0 {
		return fmt.Errorf("reverb.page_limit must be >= 0")
	}
	for key, id := range c.Reverb.Categories {
		if key == "" || id == "" {
			return fmt.Errorf("reverb.categories: empty key or id (%q: %q)", key, id)
		}
	}
	if c.Dump.Dir == "" {
		return fmt.Errorf("dump.dir is required")
	}
	if c.S3.Enabled() && c.S3.Bucket == "" {
		return fmt.Errorf("s3.bucket is required when s3.endpoint is set")
	}
	return nil
}

// RequireDB проверяет, что задана строка подключения к БД.
func (c *Config) RequireDB() error {
	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}
	return nil
}

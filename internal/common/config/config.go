package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"dolapkapak/internal/domain"
	"dolapkapak/internal/pricing"
)

const (
	ModeOrdering     = "ordering-service"
	ModeRecorder     = "order-recorder"
	ModeNotification = "notification-subscriber"
)

const envPrefix = "DOLAPKAPAK_"

type App struct {
	Name string `yaml:"name"`
}

type Log struct {
	Level string `yaml:"level"`
}

type HTTP struct {
	Port int `yaml:"port"`
}

type Timers struct {
	Boot         time.Duration `yaml:"boot"`
	Login        time.Duration `yaml:"login"`
	Confirmation time.Duration `yaml:"confirmation"`
}

type Pricing struct {
	BasePrice    float64            `yaml:"base_price"`
	Coefficients map[string]float64 `yaml:"coefficients"`
}

type Seeding struct {
	Demo bool `yaml:"demo"`
}

type DB struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type MQ struct {
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	User          string `yaml:"user"`
	Password      string `yaml:"password"`
	VHost         string `yaml:"vhost"`
	PublishOrders bool   `yaml:"publish_orders"`
}

type Admin struct {
	Email string `yaml:"email"`
}

type Config struct {
	App      App     `yaml:"app"`
	Log      Log     `yaml:"log"`
	HTTP     HTTP    `yaml:"http"`
	Timers   Timers  `yaml:"timers"`
	Pricing  Pricing `yaml:"pricing"`
	Seeding  Seeding `yaml:"seeding"`
	Database DB      `yaml:"database"`
	RabbitMQ MQ      `yaml:"rabbitmq"`
	Admin    Admin   `yaml:"admin"`
}

func Default() Config {
	coefs := make(map[string]float64, len(domain.Models))
	for m, c := range pricing.DefaultCoefficients() {
		coefs[string(m)] = c.InexactFloat64()
	}
	return Config{
		App:     App{Name: "dolapkapak"},
		Log:     Log{Level: "info"},
		HTTP:    HTTP{Port: 3000},
		Timers:  Timers{Boot: time.Second, Login: 500 * time.Millisecond, Confirmation: 2 * time.Second},
		Pricing: Pricing{BasePrice: pricing.DefaultBasePrice.InexactFloat64(), Coefficients: coefs},
		Database: DB{
			Port: 5432,
		},
		RabbitMQ: MQ{Port: 5672, VHost: "/"},
		Admin:    Admin{Email: "firat@antkap.com.tr"},
	}
}

// Load reads path over the defaults, then applies .env and DOLAPKAPAK_* overrides.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(envPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	integer := func(key string, dst *int) error {
		v, ok := lookup(envPrefix + key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, key, err)
		}
		*dst = n
		return nil
	}

	if err := integer("HTTP_PORT", &cfg.HTTP.Port); err != nil {
		return err
	}
	str("LOG_LEVEL", &cfg.Log.Level)
	str("DB_HOST", &cfg.Database.Host)
	if err := integer("DB_PORT", &cfg.Database.Port); err != nil {
		return err
	}
	str("DB_PASSWORD", &cfg.Database.Password)
	str("RABBITMQ_HOST", &cfg.RabbitMQ.Host)
	if err := integer("RABBITMQ_PORT", &cfg.RabbitMQ.Port); err != nil {
		return err
	}
	str("RABBITMQ_PASSWORD", &cfg.RabbitMQ.Password)
	if v, ok := lookup(envPrefix + "PUBLISH_ORDERS"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sPUBLISH_ORDERS: %w", envPrefix, err)
		}
		cfg.RabbitMQ.PublishOrders = b
	}
	return nil
}

// Validate checks the settings mode depends on.
func (c Config) Validate(mode string) error {
	var errs []error
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("http.port %d out of range", c.HTTP.Port))
	}
	if c.Timers.Boot <= 0 || c.Timers.Login <= 0 || c.Timers.Confirmation <= 0 {
		errs = append(errs, errors.New("timers must be positive"))
	}
	if _, err := c.Pricing.Calculator(); err != nil {
		errs = append(errs, err)
	}
	needBroker := mode == ModeRecorder || mode == ModeNotification ||
		(mode == ModeOrdering && c.RabbitMQ.PublishOrders)
	if needBroker && c.RabbitMQ.Host == "" {
		errs = append(errs, errors.New("rabbitmq.host is required"))
	}
	if mode == ModeRecorder && c.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if mode == ModeNotification && strings.TrimSpace(c.Admin.Email) == "" {
		errs = append(errs, errors.New("admin.email is required"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Calculator builds the pricing table. A model without a coefficient is a ConfigurationError.
func (p Pricing) Calculator() (*pricing.Calculator, error) {
	if p.BasePrice <= 0 {
		return nil, fmt.Errorf("pricing.base_price must be positive, got %v", p.BasePrice)
	}
	coefs := make(map[domain.CabinetModel]decimal.Decimal, len(p.Coefficients))
	for k, v := range p.Coefficients {
		m := domain.CabinetModel(k)
		if !m.Valid() {
			return nil, fmt.Errorf("pricing.coefficients: unknown model %q", k)
		}
		coefs[m] = decimal.NewFromFloat(v)
	}
	calc := pricing.New(decimal.NewFromFloat(p.BasePrice), coefs)
	if err := calc.CheckComplete(); err != nil {
		return nil, err
	}
	return calc, nil
}

func FindConfig() (string, error) {
	candidates := []string{"config.yaml", "deploy/config.example.yaml"}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fs.ErrNotExist
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Notifier NotifierConfig `yaml:"notifier"`
	Tracking TrackingConfig `yaml:"tracking"`
	API      APIConfig      `yaml:"api"`
	LogLevel string         `yaml:"log_level"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// NotifierConfig selects how new-chapter payloads are delivered. Type is one
// of "webhook", "amqp" or "none".
type NotifierConfig struct {
	Type       string        `yaml:"type"`
	WebhookURL string        `yaml:"webhook_url"`
	Timeout    time.Duration `yaml:"timeout"`
	AMQP       AMQPConfig    `yaml:"amqp"`
}

type AMQPConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

type TrackingConfig struct {
	// Interval between scheduled full tracking runs.
	Interval time.Duration `yaml:"interval"`
	// DelayMin/DelayMax bound the randomized pause between mappings within
	// one job, to stay under site-side rate limits.
	DelayMin    time.Duration `yaml:"delay_min"`
	DelayMax    time.Duration `yaml:"delay_max"`
	PageTimeout time.Duration `yaml:"page_timeout"`
}

type APIConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Notifier.Type == "" {
		c.Notifier.Type = "none"
	}
	if c.Notifier.Timeout == 0 {
		c.Notifier.Timeout = 10 * time.Second
	}
	if c.Notifier.AMQP.Exchange == "" {
		c.Notifier.AMQP.Exchange = "manga_tracker"
	}
	if c.Notifier.AMQP.RoutingKey == "" {
		c.Notifier.AMQP.RoutingKey = "chapters"
	}
	if c.Notifier.AMQP.QueueName == "" {
		c.Notifier.AMQP.QueueName = "new_chapters"
	}
	if c.Tracking.Interval == 0 {
		c.Tracking.Interval = 30 * time.Minute
	}
	if c.Tracking.DelayMin == 0 {
		c.Tracking.DelayMin = 2 * time.Second
	}
	if c.Tracking.DelayMax == 0 {
		c.Tracking.DelayMax = 5 * time.Second
	}
	if c.Tracking.PageTimeout == 0 {
		c.Tracking.PageTimeout = 30 * time.Second
	}
	if c.API.ListenAddr == "" {
		c.API.ListenAddr = ":8000"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

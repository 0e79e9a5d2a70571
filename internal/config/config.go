package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"newsroom/internal/content"
)

const (
	BackendSupabase = "supabase"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Backend  string         `yaml:"backend"`
	Supabase SupabaseConfig `yaml:"supabase"`
	Database DatabaseConfig `yaml:"database"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Site     SiteConfig     `yaml:"site"`
	LogLevel string         `yaml:"log_level"`
}

type ServerConfig struct {
	Addr          string        `yaml:"addr"`
	SessionSecret string        `yaml:"session_secret"`
	SecureCookie  bool          `yaml:"secure_cookie"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
}

type SupabaseConfig struct {
	URL string `yaml:"url"`
	Key string `yaml:"key"`
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

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// RabbitMQConfig enables content events when URL is set.
type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

func (r RabbitMQConfig) Enabled() bool {
	return r.URL != ""
}

type SiteConfig struct {
	Name                string             `yaml:"name"`
	AllCategory         string             `yaml:"all_category"`
	Categories          []content.Category `yaml:"categories"`
	HighlightCategories []string           `yaml:"highlight_categories"`
	AdminPageSize       int                `yaml:"admin_page_size"`
	ArticlePlaceholder  string             `yaml:"article_placeholder"`
	PodcastPlaceholder  string             `yaml:"podcast_placeholder"`
	ImageFallback       string             `yaml:"image_fallback"`
	SessionTTL          time.Duration      `yaml:"session_ttl"`
}

func (s SiteConfig) Catalog() content.Catalog {
	return content.Catalog{All: s.AllCategory, Categories: s.Categories}
}

var defaultCategories = []content.Category{
	{Name: "Politique"},
	{Name: "Économie"},
	{Name: "Société"},
	{Name: "Culture"},
	{Name: "Sport"},
	{Name: "Chroniques d’experts"},
	{Name: "L'Interview"},
	{Name: "Villes et communes africaines", Label: "Villes et Communes"},
	{Name: "Les mémoires africaines", Label: "Mémoires africaines"},
	{Name: "Femme d'Afrique", Label: "Femmes d'Afrique"},
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return Parse(data)
}

// Parse expands ${VAR} references, decodes the YAML and applies defaults.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = "127.0.0.1:8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Backend == "" {
		c.Backend = BackendSupabase
	}
	if c.Database.Host == "" {
		c.Database.Host = "127.0.0.1"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.User == "" {
		c.Database.User = "postgres"
	}
	if c.Database.DBName == "" {
		c.Database.DBName = "newsroom"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.SQLite.Path == "" {
		c.SQLite.Path = "newsroom.db"
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "newsroom"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "content"
	}
	if c.RabbitMQ.QueueName == "" {
		c.RabbitMQ.QueueName = "content_events"
	}
	if c.Site.Name == "" {
		c.Site.Name = "Nouvelle Afrique"
	}
	if c.Site.AllCategory == "" {
		c.Site.AllCategory = "Tout"
	}
	if len(c.Site.Categories) == 0 {
		c.Site.Categories = append([]content.Category(nil), defaultCategories...)
	}
	if c.Site.HighlightCategories == nil {
		c.Site.HighlightCategories = []string{"Culture", "Sport", "Femme d'Afrique"}
	}
	if c.Site.AdminPageSize == 0 {
		c.Site.AdminPageSize = 5
	}
	if c.Site.ArticlePlaceholder == "" {
		c.Site.ArticlePlaceholder = "https://images.unsplash.com/photo-1504711434969-e33886168f5c?auto=format&fit=crop&w=1200&q=80"
	}
	if c.Site.PodcastPlaceholder == "" {
		c.Site.PodcastPlaceholder = "https://images.unsplash.com/photo-1492619882292-1b32d2948e58?auto=format&fit=crop&w=1200&q=80"
	}
	if c.Site.ImageFallback == "" {
		c.Site.ImageFallback = "/static/placeholder.svg"
	}
	if c.Site.SessionTTL == 0 {
		c.Site.SessionTTL = 7 * 24 * time.Hour
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Backend {
	case BackendSupabase:
		if c.Supabase.URL == "" || c.Supabase.Key == "" {
			errs = append(errs, errors.New("supabase backend requires supabase.url and supabase.key"))
		}
	case BackendPostgres, BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}

	if c.Site.AdminPageSize < 1 {
		errs = append(errs, errors.New("site.admin_page_size must be positive"))
	}
	for _, cat := range c.Site.Categories {
		if cat.Name == c.Site.AllCategory {
			errs = append(errs, fmt.Errorf("category %q collides with the all-categories sentinel", cat.Name))
		}
	}

	return errors.Join(errs...)
}

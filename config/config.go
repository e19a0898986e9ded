package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Revenueflow RevenueflowConfig `yaml:"revenueflow"`
	Reader      ReaderConfig      `yaml:"reader"`
	Writer      WriterConfig      `yaml:"writer"`
	Storage     StorageConfig     `yaml:"storage"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type RevenueflowConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

type MetricsConfig struct {
	CloudWatch bool `yaml:"cloudwatch"`
}

type ReaderConfig struct {
	InputDir string `yaml:"input_dir"`
	// File name patterns; {run_date} expands to the run date.
	OrdersPattern string `yaml:"orders_pattern"`
	ItemsPattern  string `yaml:"items_pattern"`
}

type WriterConfig struct {
	OutputDir string        `yaml:"output_dir"`
	Formats   FormatsConfig `yaml:"formats"`
}

type FormatsConfig struct {
	Parquet ParquetConfig `yaml:"parquet"`
}

type ParquetConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Compression string `yaml:"compression"`
}

type StorageConfig struct {
	S3 S3Config `yaml:"s3"`
}

type S3Config struct {
	Enabled         bool   `yaml:"enabled"`
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	PathStyle       bool   `yaml:"path_style"`
	Prefix          string `yaml:"prefix"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

type LoggingConfig struct {
	Level         string `yaml:"level"`
	Format        string `yaml:"format"`
	Output        string `yaml:"output"`
	MaxAge        int    `yaml:"max_age"`
	DashboardName string `yaml:"dashboard_name"`
}

const (
	defaultOrdersPattern = "orders_{run_date}.csv"
	defaultItemsPattern  = "order_items_{run_date}.csv"
)

func LoadConfig(path string) (*Config, error) {
	// Read configuration file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Config{
		Reader: ReaderConfig{
			InputDir:      "data",
			OrdersPattern: defaultOrdersPattern,
			ItemsPattern:  defaultItemsPattern,
		},
		Writer: WriterConfig{
			OutputDir: "output",
		},
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override S3 settings from environment variables if available
	if config.Storage.S3.Enabled {
		if v := os.Getenv("AWS_ACCESS_KEY_ID"); v != "" {
			config.Storage.S3.AccessKeyID = strings.TrimSpace(v)
		}
		if v := os.Getenv("AWS_SECRET_ACCESS_KEY"); v != "" {
			config.Storage.S3.SecretAccessKey = strings.TrimSpace(v)
		}
		if v := os.Getenv("AWS_REGION"); v != "" {
			config.Storage.S3.Region = strings.TrimSpace(v)
		}
		if v := os.Getenv("S3_BUCKET"); v != "" {
			config.Storage.S3.Bucket = strings.TrimSpace(v)
		}
	}

	config.Storage.S3.Bucket = strings.TrimSpace(config.Storage.S3.Bucket)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Revenueflow.Name == "" {
		return fmt.Errorf("revenueflow.name is required")
	}

	if cfg.Revenueflow.Version == "" {
		return fmt.Errorf("revenueflow.version is required")
	}

	if cfg.Reader.InputDir == "" {
		return fmt.Errorf("reader.input_dir is required")
	}
	if !strings.Contains(cfg.Reader.OrdersPattern, "{run_date}") {
		return fmt.Errorf("reader.orders_pattern must contain {run_date}")
	}
	if !strings.Contains(cfg.Reader.ItemsPattern, "{run_date}") {
		return fmt.Errorf("reader.items_pattern must contain {run_date}")
	}

	if cfg.Writer.OutputDir == "" {
		return fmt.Errorf("writer.output_dir is required")
	}

	if cfg.Storage.S3.Enabled {
		if cfg.Storage.S3.Bucket == "" {
			return fmt.Errorf("storage.s3.bucket is required when S3 is enabled")
		}
		if cfg.Storage.S3.Region == "" {
			return fmt.Errorf("storage.s3.region is required when S3 is enabled")
		}
		if cfg.Storage.S3.AccessKeyID == "" || cfg.Storage.S3.SecretAccessKey == "" {
			return fmt.Errorf("storage.s3.access_key_id and storage.s3.secret_access_key are required when S3 is enabled")
		}
		if !isValidS3Bucket(cfg.Storage.S3.Bucket) {
			return fmt.Errorf("storage.s3.bucket '%s' is invalid", cfg.Storage.S3.Bucket)
		}
	}

	return nil
}

var s3BucketRegexp = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]{1,61}[a-z0-9]$`)

func isValidS3Bucket(name string) bool {
	if len(name) < 3 || len(name) > 63 {
		return false
	}
	if strings.Contains(name, "..") || strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") {
		return false
	}
	return s3BucketRegexp.MatchString(name)
}

// OrdersFile expands the orders file pattern for a run date.
func (c ReaderConfig) OrdersFile(runDate string) string {
	return strings.ReplaceAll(c.OrdersPattern, "{run_date}", runDate)
}

// ItemsFile expands the order-items file pattern for a run date.
func (c ReaderConfig) ItemsFile(runDate string) string {
	return strings.ReplaceAll(c.ItemsPattern, "{run_date}", runDate)
}

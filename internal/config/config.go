// Package config loads client settings from a YAML file, YUSRA_* environment
// variables and built-in defaults, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const DefaultBaseURL = "https://yusra-server.onrender.com/api"

// Config is the full client configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	DataDir   string          `yaml:"data_dir" mapstructure:"data_dir"`
	LogFile   string          `yaml:"log_file" mapstructure:"log_file"`
	DevServer DevServerConfig `yaml:"dev_server" mapstructure:"dev_server"`
	Export    ExportConfig    `yaml:"export" mapstructure:"export"`
}

type ServerConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// DevServerConfig configures `yusra dev-server`
type DevServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

type ExportConfig struct {
	S3 S3Config `yaml:"s3" mapstructure:"s3"`
}

// S3Config points board exports at an S3 compatible bucket. Endpoint is
// empty for AWS itself.
type S3Config struct {
	Endpoint     string `yaml:"endpoint" mapstructure:"endpoint"`
	Bucket       string `yaml:"bucket" mapstructure:"bucket"`
	Region       string `yaml:"region" mapstructure:"region"`
	AccessKey    string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey    string `yaml:"secret_key" mapstructure:"secret_key"`
	UsePathStyle bool   `yaml:"use_path_style" mapstructure:"use_path_style"`
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() *Config {
	return &Config{
		Server:    ServerConfig{BaseURL: DefaultBaseURL},
		DataDir:   DefaultDataDir(),
		DevServer: DevServerConfig{Addr: "127.0.0.1:8080"},
		Export:    ExportConfig{S3: S3Config{Region: "us-east-1"}},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/yusra/config.yaml
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "yusra", "config.yaml")
}

// DefaultDataDir returns $XDG_DATA_HOME/yusra
func DefaultDataDir() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, "yusra")
}

// Load reads path (DefaultPath when empty). A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	def := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("YUSRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, def)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	cfg.Server.BaseURL = strings.TrimRight(cfg.Server.BaseURL, "/")
	if cfg.DataDir == "" {
		cfg.DataDir = def.DataDir
	}
	return cfg, nil
}

// Every key is registered so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper, def *Config) {
	v.SetDefault("server.base_url", def.Server.BaseURL)
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("dev_server.addr", def.DevServer.Addr)
	v.SetDefault("export.s3.endpoint", def.Export.S3.Endpoint)
	v.SetDefault("export.s3.bucket", def.Export.S3.Bucket)
	v.SetDefault("export.s3.region", def.Export.S3.Region)
	v.SetDefault("export.s3.access_key", def.Export.S3.AccessKey)
	v.SetDefault("export.s3.secret_key", def.Export.S3.SecretKey)
	v.SetDefault("export.s3.use_path_style", def.Export.S3.UsePathStyle)
}

// DatabasePath returns where the settings database lives
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "yusra.db")
}

// LogPath returns the log file, defaulting to yusra.log in the data dir
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, "yusra.log")
}

// ExportDir is where "yusra export" writes snapshots without --out
func (c *Config) ExportDir() string {
	return filepath.Join(c.DataDir, "exports")
}

// Save writes cfg to path as YAML, creating the directory. It refuses to
// overwrite an existing file unless force is set.
func Save(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

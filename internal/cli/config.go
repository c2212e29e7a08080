package cli

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Listen        string        `yaml:"listen"          mapstructure:"listen"`
	EnableCORS    bool          `yaml:"enable_cors"     mapstructure:"enable_cors"`
	PDPBackend    string        `yaml:"pdp_backend"     mapstructure:"pdp_backend"` // cerbos|openfga|mock
	PDPAddress    string        `yaml:"pdp_address"     mapstructure:"pdp_address"`
	PDPTimeout    time.Duration `yaml:"pdp_timeout"     mapstructure:"pdp_timeout"`
	PolicyVersion string        `yaml:"policy_version"  mapstructure:"policy_version"`
	FGAAPIURL     string        `yaml:"fga_api_url"     mapstructure:"fga_api_url"`
	FGAStoreID    string        `yaml:"fga_store_id"    mapstructure:"fga_store_id"`
	FGAModelID    string        `yaml:"fga_model_id"    mapstructure:"fga_model_id"`
	TokenSecret   string        `yaml:"token_secret"    mapstructure:"token_secret"`
	TokenTTL      time.Duration `yaml:"token_ttl"       mapstructure:"token_ttl"`
	AuditBuffer   int           `yaml:"audit_buffer"    mapstructure:"audit_buffer"`
}

func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Defaults
	v.SetDefault("listen", ":8000")
	v.SetDefault("enable_cors", true)
	v.SetDefault("pdp_backend", "cerbos")
	v.SetDefault("pdp_address", "localhost:3593")
	v.SetDefault("pdp_timeout", "2s")
	v.SetDefault("policy_version", "default")
	v.SetDefault("token_secret", "dev-secret-change-me")
	v.SetDefault("token_ttl", "24h")
	v.SetDefault("audit_buffer", 256)

	// Env overrides: BERCOS_LISTEN, BERCOS_PDP_ADDRESS, etc.
	v.SetEnvPrefix("BERCOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// A missing config file is fine, defaults and env cover everything.
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

package app

import (
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"

	"github.com/xenking/shopdesk/internal/storage"
)

// Config holds the application configuration, loadable from environment
// variables (SHOPDESK_ prefix) or YAML config files. Command line flags are
// owned by the CLI and applied on top.
type Config struct {
	Database     storage.Config
	Addr         string `default:"127.0.0.1:8080" usage:"API server listen address"`
	SeedDefaults bool   `default:"true" usage:"Store demo products when the catalog is empty"`
	Report       ReportConfig
	Graceful     GracefulConfig
}

// ReportConfig tunes reports.
type ReportConfig struct {
	Top int `default:"5" usage:"Size of the top clients ranking"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ShutdownTimeout time.Duration `default:"10s" usage:"Maximum shutdown duration"`
}

// DefaultFiles are the config files probed when none is given.
var DefaultFiles = []string{"shopdesk.yaml", "/etc/shopdesk/shopdesk.yaml"}

// LoadConfig loads configuration from the given YAML files, falling back to
// DefaultFiles, and from the environment.
func LoadConfig(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = DefaultFiles
	}
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		SkipFlags: true,
		EnvPrefix: "SHOPDESK",
		Files:     files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if cfg.Report.Top <= 0 {
		return nil, errors.Errorf("report top must be positive, got %d", cfg.Report.Top)
	}
	return &cfg, nil
}

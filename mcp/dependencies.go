package mcp

import (
	"github.com/ludo-technologies/csim/domain"
	"github.com/ludo-technologies/csim/internal/config"
	"github.com/ludo-technologies/csim/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	fileReader domain.FileReader
	scanner    domain.ScanService
	comparer   domain.CompareService
	config     *config.Config
	configPath string
}

// NewDependencies constructs the dependency set with sane defaults. The scan
// service is shared so its PDG cache survives across tool calls.
func NewDependencies(cfg *config.Config, configPath string) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	fileReader := service.NewFileReader()
	return &Dependencies{
		fileReader: fileReader,
		scanner:    service.NewScanService(fileReader, service.NewNoopProgressManager()),
		comparer:   service.NewCompareService(),
		config:     cfg,
		configPath: configPath,
	}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

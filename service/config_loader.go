package service

import (
	"github.com/ludo-technologies/csim/domain"
	"github.com/ludo-technologies/csim/internal/config"
)

// ConfigLoaderImpl loads compare and scan requests from configuration files
type ConfigLoaderImpl struct{}

// NewConfigLoader creates a new configuration loader service
func NewConfigLoader() *ConfigLoaderImpl {
	return &ConfigLoaderImpl{}
}

// LoadCompareConfig loads compare configuration from a file, or the
// discovered default when configPath is empty
func (l *ConfigLoaderImpl) LoadCompareConfig(configPath string) (*domain.CompareRequest, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}

	req := domain.DefaultCompareRequest()
	req.Rounds = cfg.Analysis.Rounds
	req.OutputFormat = domain.OutputFormat(cfg.Output.Format)
	req.ShowDetails = cfg.Output.ShowDetails
	return req, nil
}

// LoadScanConfig loads scan configuration from a file, or the discovered
// default when configPath is empty
func (l *ConfigLoaderImpl) LoadScanConfig(configPath string) (*domain.ScanRequest, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}

	req := domain.DefaultScanRequest()
	req.Rounds = cfg.Analysis.Rounds
	req.SimilarityThreshold = cfg.Scan.Threshold
	req.MinNodes = cfg.Scan.MinNodes
	req.IncludePatterns = cfg.Scan.IncludePatterns
	req.ExcludePatterns = cfg.Scan.ExcludePatterns
	req.Recursive = cfg.Scan.Recursive
	req.OutputFormat = domain.OutputFormat(cfg.Output.Format)
	req.ShowDetails = cfg.Output.ShowDetails
	req.SortBy = domain.SortCriteria(cfg.Output.SortBy)
	return req, nil
}

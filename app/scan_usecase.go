package app

import (
	"context"
	"fmt"

	"github.com/ludo-technologies/csim/domain"
	"github.com/ludo-technologies/csim/internal/config"
)

// ScanUseCase orchestrates all-pairs similarity scanning
type ScanUseCase struct {
	service      domain.ScanService
	fileReader   domain.FileReader
	formatter    domain.ScanOutputFormatter
	configLoader domain.ScanConfigurationLoader
}

// NewScanUseCase creates a new scan use case with the given dependencies
func NewScanUseCase(
	service domain.ScanService,
	fileReader domain.FileReader,
	formatter domain.ScanOutputFormatter,
	configLoader domain.ScanConfigurationLoader,
) *ScanUseCase {
	return &ScanUseCase{
		service:      service,
		fileReader:   fileReader,
		formatter:    formatter,
		configLoader: configLoader,
	}
}

// Execute runs the scan and writes the formatted result
func (uc *ScanUseCase) Execute(ctx context.Context, req domain.ScanRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if req.ConfigPath != "" {
		configReq, err := uc.configLoader.LoadScanConfig(req.ConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		req = uc.mergeConfiguration(*configReq, req)
	}

	files, err := uc.fileReader.CollectCSourceFiles(req.Paths, req.Recursive, req.IncludePatterns, req.ExcludePatterns)
	if err != nil {
		return fmt.Errorf("failed to collect files: %w", err)
	}

	if len(files) == 0 {
		return uc.outputEmptyResults(req)
	}

	response, err := uc.service.ScanFiles(ctx, files, &req)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if err := uc.formatter.FormatScanResponse(response, req.OutputFormat, req.OutputWriter, req.ShowDetails); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	return nil
}

// mergeConfiguration merges configuration from file with request parameters.
// Explicitly set CLI flags take precedence over configuration file values;
// without flag information a value only wins when it differs from the default.
func (uc *ScanUseCase) mergeConfiguration(configReq, requestReq domain.ScanRequest) domain.ScanRequest {
	merged := configReq

	if len(requestReq.Paths) > 0 {
		merged.Paths = requestReq.Paths
	}
	merged.OutputWriter = requestReq.OutputWriter
	merged.ExplicitFlags = requestReq.ExplicitFlags

	tracker := config.NewFlagTrackerWithFlags(requestReq.ExplicitFlags)
	defaultReq := domain.DefaultScanRequest()

	merged.Recursive = tracker.MergeBool(merged.Recursive, requestReq.Recursive, "recursive")
	if tracker.WasSet("rounds") || requestReq.Rounds != defaultReq.Rounds {
		merged.Rounds = requestReq.Rounds
	}
	if tracker.WasSet("threshold") || requestReq.SimilarityThreshold != defaultReq.SimilarityThreshold {
		merged.SimilarityThreshold = requestReq.SimilarityThreshold
	}
	if tracker.WasSet("min-nodes") || requestReq.MinNodes != defaultReq.MinNodes {
		merged.MinNodes = requestReq.MinNodes
	}
	if formatFlagSet(tracker) || requestReq.OutputFormat != defaultReq.OutputFormat {
		merged.OutputFormat = requestReq.OutputFormat
	}
	if tracker.WasSet("details") || requestReq.ShowDetails != defaultReq.ShowDetails {
		merged.ShowDetails = requestReq.ShowDetails
	}
	if tracker.WasSet("sort") || requestReq.SortBy != defaultReq.SortBy {
		merged.SortBy = requestReq.SortBy
	}
	if tracker.WasSet("include") && len(requestReq.IncludePatterns) > 0 {
		merged.IncludePatterns = requestReq.IncludePatterns
	}
	if tracker.WasSet("exclude") && len(requestReq.ExcludePatterns) > 0 {
		merged.ExcludePatterns = requestReq.ExcludePatterns
	}

	return merged
}

// outputEmptyResults outputs empty results when no files are found
func (uc *ScanUseCase) outputEmptyResults(req domain.ScanRequest) error {
	emptyResponse := &domain.ScanResponse{
		Pairs:      []*domain.SimilarPair{},
		Statistics: &domain.ScanStatistics{},
	}

	return uc.formatter.FormatScanResponse(emptyResponse, req.OutputFormat, req.OutputWriter, req.ShowDetails)
}

// ScanUseCaseBuilder helps build ScanUseCase with dependencies
type ScanUseCaseBuilder struct {
	service      domain.ScanService
	fileReader   domain.FileReader
	formatter    domain.ScanOutputFormatter
	configLoader domain.ScanConfigurationLoader
}

// NewScanUseCaseBuilder creates a new builder for ScanUseCase
func NewScanUseCaseBuilder() *ScanUseCaseBuilder {
	return &ScanUseCaseBuilder{}
}

// WithService sets the scan service
func (b *ScanUseCaseBuilder) WithService(service domain.ScanService) *ScanUseCaseBuilder {
	b.service = service
	return b
}

// WithFileReader sets the file reader
func (b *ScanUseCaseBuilder) WithFileReader(fileReader domain.FileReader) *ScanUseCaseBuilder {
	b.fileReader = fileReader
	return b
}

// WithFormatter sets the output formatter
func (b *ScanUseCaseBuilder) WithFormatter(formatter domain.ScanOutputFormatter) *ScanUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithConfigLoader sets the configuration loader
func (b *ScanUseCaseBuilder) WithConfigLoader(configLoader domain.ScanConfigurationLoader) *ScanUseCaseBuilder {
	b.configLoader = configLoader
	return b
}

// Build creates the ScanUseCase with the configured dependencies
func (b *ScanUseCaseBuilder) Build() (*ScanUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("scan service is required")
	}
	if b.fileReader == nil {
		return nil, fmt.Errorf("file reader is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}
	if b.configLoader == nil {
		return nil, fmt.Errorf("configuration loader is required")
	}

	return NewScanUseCase(b.service, b.fileReader, b.formatter, b.configLoader), nil
}

package app

import (
	"context"
	"fmt"

	"github.com/ludo-technologies/csim/domain"
	"github.com/ludo-technologies/csim/internal/config"
)

// formatFlagSet reports whether any of the output format flags was set
func formatFlagSet(tracker *config.FlagTracker) bool {
	return tracker.WasSet("json") || tracker.WasSet("yaml") || tracker.WasSet("csv")
}

// CompareUseCase orchestrates two-file similarity comparison
type CompareUseCase struct {
	service      domain.CompareService
	fileReader   domain.FileReader
	formatter    domain.CompareOutputFormatter
	configLoader domain.CompareConfigurationLoader
}

// NewCompareUseCase creates a new compare use case with the given dependencies
func NewCompareUseCase(
	service domain.CompareService,
	fileReader domain.FileReader,
	formatter domain.CompareOutputFormatter,
	configLoader domain.CompareConfigurationLoader,
) *CompareUseCase {
	return &CompareUseCase{
		service:      service,
		fileReader:   fileReader,
		formatter:    formatter,
		configLoader: configLoader,
	}
}

// Execute runs the comparison and writes the formatted result
func (uc *CompareUseCase) Execute(ctx context.Context, req domain.CompareRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if req.ConfigPath != "" {
		configReq, err := uc.configLoader.LoadCompareConfig(req.ConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		req = uc.mergeConfiguration(*configReq, req)
	}

	for _, file := range []string{req.File1, req.File2} {
		exists, err := uc.fileReader.FileExists(file)
		if err != nil {
			return fmt.Errorf("failed to check file: %w", err)
		}
		if !exists {
			return domain.NewFileNotFoundError(file, nil)
		}
		if !uc.fileReader.IsValidCSourceFile(file) {
			return domain.NewInvalidInputError(fmt.Sprintf("not a C source file: %s", file), nil)
		}
	}

	response, err := uc.service.Compare(ctx, &req)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	if err := uc.formatter.FormatCompareResponse(response, req.OutputFormat, req.OutputWriter, req.ShowDetails); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	return nil
}

// mergeConfiguration merges configuration from file with request parameters.
// Explicitly set CLI flags take precedence over configuration file values;
// without flag information a value only wins when it differs from the default.
func (uc *CompareUseCase) mergeConfiguration(configReq, requestReq domain.CompareRequest) domain.CompareRequest {
	merged := configReq

	merged.File1 = requestReq.File1
	merged.File2 = requestReq.File2
	merged.DotDir = requestReq.DotDir
	merged.OutputWriter = requestReq.OutputWriter
	merged.ExplicitFlags = requestReq.ExplicitFlags

	tracker := config.NewFlagTrackerWithFlags(requestReq.ExplicitFlags)
	defaultReq := domain.DefaultCompareRequest()

	if tracker.WasSet("rounds") || requestReq.Rounds != defaultReq.Rounds {
		merged.Rounds = requestReq.Rounds
	}
	if formatFlagSet(tracker) || requestReq.OutputFormat != defaultReq.OutputFormat {
		merged.OutputFormat = requestReq.OutputFormat
	}
	if tracker.WasSet("details") || requestReq.ShowDetails != defaultReq.ShowDetails {
		merged.ShowDetails = requestReq.ShowDetails
	}

	return merged
}

// CompareUseCaseBuilder helps build CompareUseCase with dependencies
type CompareUseCaseBuilder struct {
	service      domain.CompareService
	fileReader   domain.FileReader
	formatter    domain.CompareOutputFormatter
	configLoader domain.CompareConfigurationLoader
}

// NewCompareUseCaseBuilder creates a new builder for CompareUseCase
func NewCompareUseCaseBuilder() *CompareUseCaseBuilder {
	return &CompareUseCaseBuilder{}
}

// WithService sets the compare service
func (b *CompareUseCaseBuilder) WithService(service domain.CompareService) *CompareUseCaseBuilder {
	b.service = service
	return b
}

// WithFileReader sets the file reader
func (b *CompareUseCaseBuilder) WithFileReader(fileReader domain.FileReader) *CompareUseCaseBuilder {
	b.fileReader = fileReader
	return b
}

// WithFormatter sets the output formatter
func (b *CompareUseCaseBuilder) WithFormatter(formatter domain.CompareOutputFormatter) *CompareUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithConfigLoader sets the configuration loader
func (b *CompareUseCaseBuilder) WithConfigLoader(configLoader domain.CompareConfigurationLoader) *CompareUseCaseBuilder {
	b.configLoader = configLoader
	return b
}

// Build creates the CompareUseCase with the configured dependencies
func (b *CompareUseCaseBuilder) Build() (*CompareUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("compare service is required")
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

	return NewCompareUseCase(b.service, b.fileReader, b.formatter, b.configLoader), nil
}

package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ludo-technologies/csim/domain"
)

// OutputFormatterImpl implements the compare and scan formatter interfaces
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter service
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// FormatCompareResponse formats a compare response according to the format
func (f *OutputFormatterImpl) FormatCompareResponse(response *domain.CompareResponse, format domain.OutputFormat, writer io.Writer, showDetails bool) error {
	var output string
	var err error

	switch format {
	case domain.OutputFormatText:
		output = f.formatCompareText(response, showDetails)
	case domain.OutputFormatJSON:
		output, err = EncodeJSON(response)
	case domain.OutputFormatYAML:
		output, err = EncodeYAML(response)
	case domain.OutputFormatCSV:
		output, err = f.formatCompareCSV(response)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
	if err != nil {
		return err
	}

	if _, err := writer.Write([]byte(output)); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

// formatCompareText renders the comparison as human-readable text. The
// similarity is always formatted to 4 decimal places.
func (f *OutputFormatterImpl) formatCompareText(response *domain.CompareResponse, showDetails bool) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("WL kernel similarity: %.4f\n", response.Similarity))

	if showDetails {
		builder.WriteString(fmt.Sprintf("\nRounds: %d\n", response.Rounds))
		for _, g := range []*domain.GraphSummary{response.Graph1, response.Graph2} {
			if g == nil {
				continue
			}
			builder.WriteString(fmt.Sprintf("\n%s\n", g.FilePath))
			builder.WriteString(fmt.Sprintf("  Nodes:         %d\n", g.Nodes))
			builder.WriteString(fmt.Sprintf("  Control edges: %d\n", g.ControlEdges))
			builder.WriteString(fmt.Sprintf("  Data edges:    %d\n", g.DataEdges))
		}
		for _, dotFile := range response.DotFiles {
			builder.WriteString(fmt.Sprintf("\nPDG written: %s\n", dotFile))
		}
	}

	return builder.String()
}

// formatCompareCSV renders the comparison as a single CSV record
func (f *OutputFormatterImpl) formatCompareCSV(response *domain.CompareResponse) (string, error) {
	var builder strings.Builder
	writer := csv.NewWriter(&builder)

	header := []string{"file1", "file2", "similarity", "rounds", "nodes1", "nodes2"}
	if err := writer.Write(header); err != nil {
		return "", domain.NewOutputError("failed to write CSV header", err)
	}

	row := []string{
		response.Graph1.FilePath,
		response.Graph2.FilePath,
		fmt.Sprintf("%.4f", response.Similarity),
		fmt.Sprintf("%d", response.Rounds),
		fmt.Sprintf("%d", response.Graph1.Nodes),
		fmt.Sprintf("%d", response.Graph2.Nodes),
	}
	if err := writer.Write(row); err != nil {
		return "", domain.NewOutputError("failed to write CSV row", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", domain.NewOutputError("CSV writer error", err)
	}

	return builder.String(), nil
}

// FormatScanResponse formats a scan response according to the format
func (f *OutputFormatterImpl) FormatScanResponse(response *domain.ScanResponse, format domain.OutputFormat, writer io.Writer, showDetails bool) error {
	var output string
	var err error

	switch format {
	case domain.OutputFormatText:
		output = f.formatScanText(response, showDetails)
	case domain.OutputFormatJSON:
		output, err = EncodeJSON(response)
	case domain.OutputFormatYAML:
		output, err = EncodeYAML(response)
	case domain.OutputFormatCSV:
		output, err = f.formatScanCSV(response)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
	if err != nil {
		return err
	}

	if _, err := writer.Write([]byte(output)); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

// formatScanText renders scan results as human-readable text
func (f *OutputFormatterImpl) formatScanText(response *domain.ScanResponse, showDetails bool) string {
	var builder strings.Builder

	builder.WriteString("Similarity Scan Report\n")
	builder.WriteString("======================\n\n")

	stats := response.Statistics
	builder.WriteString(fmt.Sprintf("Files analyzed: %d", stats.FilesAnalyzed))
	if stats.FilesSkipped > 0 {
		builder.WriteString(fmt.Sprintf(" (%d skipped)", stats.FilesSkipped))
	}
	builder.WriteString(fmt.Sprintf("\nPairs scored:   %d\n", stats.PairsScored))
	builder.WriteString(fmt.Sprintf("Pairs reported: %d\n", stats.PairsReported))

	if len(response.Pairs) > 0 {
		builder.WriteString("\nSimilar pairs:\n")
		for _, pair := range response.Pairs {
			builder.WriteString(fmt.Sprintf("  %.4f  %s <-> %s", pair.Similarity, pair.File1, pair.File2))
			if showDetails {
				builder.WriteString(fmt.Sprintf("  (%d/%d nodes)", pair.Nodes1, pair.Nodes2))
			}
			builder.WriteString("\n")
		}
	}

	if len(response.Warnings) > 0 {
		builder.WriteString("\nWarnings:\n")
		for _, warning := range response.Warnings {
			builder.WriteString(fmt.Sprintf("  %s\n", warning))
		}
	}

	return builder.String()
}

// formatScanCSV renders scan results as CSV, one record per reported pair
func (f *OutputFormatterImpl) formatScanCSV(response *domain.ScanResponse) (string, error) {
	var builder strings.Builder
	writer := csv.NewWriter(&builder)

	header := []string{"file1", "file2", "similarity", "nodes1", "nodes2"}
	if err := writer.Write(header); err != nil {
		return "", domain.NewOutputError("failed to write CSV header", err)
	}

	for _, pair := range response.Pairs {
		row := []string{
			pair.File1,
			pair.File2,
			fmt.Sprintf("%.4f", pair.Similarity),
			fmt.Sprintf("%d", pair.Nodes1),
			fmt.Sprintf("%d", pair.Nodes2),
		}
		if err := writer.Write(row); err != nil {
			return "", domain.NewOutputError("failed to write CSV row", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", domain.NewOutputError("CSV writer error", err)
	}

	return builder.String(), nil
}

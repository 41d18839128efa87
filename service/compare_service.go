package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ludo-technologies/csim/domain"
	"github.com/ludo-technologies/csim/internal/analyzer"
	"github.com/ludo-technologies/csim/internal/parser"
	"github.com/ludo-technologies/csim/internal/version"
)

// CompareServiceImpl implements the domain.CompareService interface
type CompareServiceImpl struct{}

// NewCompareService creates a new compare service
func NewCompareService() *CompareServiceImpl {
	return &CompareServiceImpl{}
}

// Compare parses both files, builds a PDG for each, and computes the WL
// kernel similarity between them.
func (s *CompareServiceImpl) Compare(ctx context.Context, req *domain.CompareRequest) (*domain.CompareResponse, error) {
	startTime := time.Now()

	g1, err := s.buildPDG(ctx, req.File1)
	if err != nil {
		return nil, err
	}
	g2, err := s.buildPDG(ctx, req.File2)
	if err != nil {
		return nil, err
	}

	kernel := analyzer.NewWLKernel()
	similarity, err := kernel.Similarity(g1, g2, req.Rounds)
	if err != nil {
		return nil, domain.NewAnalysisError("similarity computation failed", err)
	}

	response := &domain.CompareResponse{
		Similarity:  similarity,
		Rounds:      req.Rounds,
		Graph1:      graphSummary(req.File1, g1),
		Graph2:      graphSummary(req.File2, g2),
		Duration:    time.Since(startTime).Milliseconds(),
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Short(),
	}

	if req.DotDir != "" {
		dotFiles, err := s.writeDOTFiles(req.DotDir, req.File1, g1, req.File2, g2)
		if err != nil {
			return nil, err
		}
		response.DotFiles = dotFiles
	}

	return response, nil
}

// buildPDG parses one source file and builds its PDG
func (s *CompareServiceImpl) buildPDG(ctx context.Context, filePath string) (*analyzer.PDG, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, domain.NewFileNotFoundError(filePath, err)
	}

	p := parser.New()
	result, err := p.Parse(ctx, content)
	if err != nil {
		return nil, domain.NewParseError(filePath, err)
	}

	builder := analyzer.NewPDGBuilder()
	graph, err := builder.Build(result.AST)
	if err != nil {
		return nil, domain.NewAnalysisError(fmt.Sprintf("PDG construction failed for %s", filePath), err)
	}

	return graph, nil
}

// writeDOTFiles dumps both graphs as Graphviz DOT files into dotDir
func (s *CompareServiceImpl) writeDOTFiles(dotDir, file1 string, g1 *analyzer.PDG, file2 string, g2 *analyzer.PDG) ([]string, error) {
	if err := os.MkdirAll(dotDir, 0755); err != nil {
		return nil, domain.NewOutputError(fmt.Sprintf("failed to create DOT directory %s", dotDir), err)
	}

	var written []string
	for _, entry := range []struct {
		source string
		graph  *analyzer.PDG
	}{
		{file1, g1},
		{file2, g2},
	} {
		base := strings.TrimSuffix(filepath.Base(entry.source), filepath.Ext(entry.source))
		dotPath := filepath.Join(dotDir, base+".pdg.dot")

		f, err := os.Create(dotPath)
		if err != nil {
			return nil, domain.NewOutputError(fmt.Sprintf("failed to create %s", dotPath), err)
		}
		if err := entry.graph.WriteDOT(f); err != nil {
			_ = f.Close()
			return nil, domain.NewOutputError(fmt.Sprintf("failed to write %s", dotPath), err)
		}
		if err := f.Close(); err != nil {
			return nil, domain.NewOutputError(fmt.Sprintf("failed to close %s", dotPath), err)
		}
		written = append(written, dotPath)
	}

	return written, nil
}

// graphSummary extracts the reportable shape of a PDG
func graphSummary(filePath string, g *analyzer.PDG) *domain.GraphSummary {
	return &domain.GraphSummary{
		FilePath:     filePath,
		Nodes:        g.Size(),
		ControlEdges: g.CountEdges(analyzer.PDGEdgeControl),
		DataEdges:    g.CountEdges(analyzer.PDGEdgeData),
	}
}

package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/ludo-technologies/csim/domain"
	"github.com/ludo-technologies/csim/internal/analyzer"
	"github.com/ludo-technologies/csim/internal/parser"
	"github.com/ludo-technologies/csim/internal/version"
)

// ScanServiceImpl implements the domain.ScanService interface
type ScanServiceImpl struct {
	fileReader domain.FileReader
	progress   domain.ProgressManager
	cache      *PDGCache

	// Concurrency for the PDG build phase; 0 means GOMAXPROCS
	Concurrency int
}

// NewScanService creates a new scan service
func NewScanService(fileReader domain.FileReader, progress domain.ProgressManager) *ScanServiceImpl {
	return &ScanServiceImpl{
		fileReader: fileReader,
		progress:   progress,
		cache:      NewPDGCache(0),
	}
}

// builtPDG is the outcome of building one file's PDG
type builtPDG struct {
	path  string
	graph *analyzer.PDG
	err   error
}

// Scan collects files under the request paths and scores every pair
func (s *ScanServiceImpl) Scan(ctx context.Context, req *domain.ScanRequest) (*domain.ScanResponse, error) {
	files, err := s.fileReader.CollectCSourceFiles(req.Paths, req.Recursive, req.IncludePatterns, req.ExcludePatterns)
	if err != nil {
		return nil, err
	}
	return s.ScanFiles(ctx, files, req)
}

// ScanFiles builds PDGs for the given files in parallel, then scores all
// pairs sequentially. Unparsable files are skipped with a warning; they never
// abort the scan.
func (s *ScanServiceImpl) ScanFiles(ctx context.Context, filePaths []string, req *domain.ScanRequest) (*domain.ScanResponse, error) {
	startTime := time.Now()

	stats := &domain.ScanStatistics{FilesCollected: len(filePaths)}
	var warnings []string

	built := s.buildAll(ctx, filePaths)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Keep only usable graphs, preserving collection order
	var graphs []builtPDG
	for _, b := range built {
		switch {
		case b.err != nil:
			warnings = append(warnings, fmt.Sprintf("skipping %s: %v", b.path, b.err))
			stats.FilesSkipped++
		case b.graph.Size() < req.MinNodes:
			stats.FilesSkipped++
		default:
			graphs = append(graphs, b)
		}
	}
	stats.FilesAnalyzed = len(graphs)

	totalPairs := len(graphs) * (len(graphs) - 1) / 2
	if s.progress != nil && totalPairs > 0 {
		s.progress.Initialize(totalPairs)
		s.progress.Start()
		defer s.progress.Close()
	}

	kernel := analyzer.NewWLKernel()
	var pairs []*domain.SimilarPair

	// Pairwise scoring is sequential: Similarity mutates WL labels in place,
	// so a graph must not be scored by two calls at once.
	for i := 0; i < len(graphs); i++ {
		for j := i + 1; j < len(graphs); j++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			similarity, err := kernel.Similarity(graphs[i].graph, graphs[j].graph, req.Rounds)
			if err != nil {
				return nil, domain.NewAnalysisError(
					fmt.Sprintf("scoring %s against %s failed", graphs[i].path, graphs[j].path), err)
			}
			stats.PairsScored++
			if s.progress != nil {
				s.progress.Update(stats.PairsScored, totalPairs)
			}

			if similarity >= req.SimilarityThreshold {
				pairs = append(pairs, &domain.SimilarPair{
					File1:      graphs[i].path,
					File2:      graphs[j].path,
					Similarity: similarity,
					Nodes1:     graphs[i].graph.Size(),
					Nodes2:     graphs[j].graph.Size(),
				})
			}
		}
	}

	if s.progress != nil && totalPairs > 0 {
		s.progress.Complete(true)
	}

	sortPairs(pairs, req.SortBy)
	stats.PairsReported = len(pairs)

	return &domain.ScanResponse{
		Pairs:       pairs,
		Statistics:  stats,
		Warnings:    warnings,
		Duration:    time.Since(startTime).Milliseconds(),
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Short(),
	}, nil
}

// buildAll builds PDGs for all files in parallel. Each worker owns its parser
// because tree-sitter is not thread-safe. Results come back in input order.
func (s *ScanServiceImpl) buildAll(ctx context.Context, filePaths []string) []builtPDG {
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	results := make([]builtPDG, len(filePaths))

	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)

	for i, filePath := range filePaths {
		wg.Add(1)
		go func(idx int, fp string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			graph, err := s.buildOne(ctx, fp)
			results[idx] = builtPDG{path: fp, graph: graph, err: err}
		}(i, filePath)
	}

	wg.Wait()
	return results
}

// buildOne reads, parses, and builds a single file's PDG, consulting the
// content-addressed cache first.
func (s *ScanServiceImpl) buildOne(ctx context.Context, filePath string) (*analyzer.PDG, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	digest := sha256.Sum256(content)
	key := filePath + ":" + hex.EncodeToString(digest[:])

	if graph, cachedErr, ok := s.cache.Get(key); ok {
		return graph, cachedErr
	}

	graph, err := buildPDGFromSource(ctx, content)
	s.cache.Put(key, graph, err)
	return graph, err
}

// buildPDGFromSource parses C source text and builds its PDG
func buildPDGFromSource(ctx context.Context, source []byte) (*analyzer.PDG, error) {
	p := parser.New()
	result, err := p.Parse(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	builder := analyzer.NewPDGBuilder()
	return builder.Build(result.AST)
}

// sortPairs orders scan results by the requested criteria. Similarity and
// size sort descending with location as tiebreaker; location sorts ascending.
func sortPairs(pairs []*domain.SimilarPair, sortBy domain.SortCriteria) {
	switch sortBy {
	case domain.SortByLocation:
		sort.Slice(pairs, func(i, j int) bool {
			if pairs[i].File1 != pairs[j].File1 {
				return pairs[i].File1 < pairs[j].File1
			}
			return pairs[i].File2 < pairs[j].File2
		})
	case domain.SortBySize:
		sort.Slice(pairs, func(i, j int) bool {
			si := pairs[i].Nodes1 + pairs[i].Nodes2
			sj := pairs[j].Nodes1 + pairs[j].Nodes2
			if si != sj {
				return si > sj
			}
			return pairs[i].File1 < pairs[j].File1
		})
	default: // similarity
		sort.Slice(pairs, func(i, j int) bool {
			if pairs[i].Similarity != pairs[j].Similarity {
				return pairs[i].Similarity > pairs[j].Similarity
			}
			if pairs[i].File1 != pairs[j].File1 {
				return pairs[i].File1 < pairs[j].File1
			}
			return pairs[i].File2 < pairs[j].File2
		})
	}
}

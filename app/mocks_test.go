package app

import (
	"context"
	"io"

	"github.com/ludo-technologies/csim/domain"
	"github.com/stretchr/testify/mock"
)

type mockCompareService struct {
	mock.Mock
}

func (m *mockCompareService) Compare(ctx context.Context, req *domain.CompareRequest) (*domain.CompareResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*domain.CompareResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockScanService struct {
	mock.Mock
}

func (m *mockScanService) Scan(ctx context.Context, req *domain.ScanRequest) (*domain.ScanResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*domain.ScanResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScanService) ScanFiles(ctx context.Context, filePaths []string, req *domain.ScanRequest) (*domain.ScanResponse, error) {
	args := m.Called(ctx, filePaths, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*domain.ScanResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockFileReader struct {
	mock.Mock
}

func (m *mockFileReader) CollectCSourceFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	args := m.Called(paths, recursive, includePatterns, excludePatterns)
	if files := args.Get(0); files != nil {
		return files.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFileReader) ReadFile(path string) ([]byte, error) {
	args := m.Called(path)
	if content := args.Get(0); content != nil {
		return content.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFileReader) IsValidCSourceFile(path string) bool {
	return m.Called(path).Bool(0)
}

func (m *mockFileReader) FileExists(path string) (bool, error) {
	args := m.Called(path)
	return args.Bool(0), args.Error(1)
}

type mockCompareFormatter struct {
	mock.Mock
}

func (m *mockCompareFormatter) FormatCompareResponse(response *domain.CompareResponse, format domain.OutputFormat, writer io.Writer, showDetails bool) error {
	return m.Called(response, format, writer, showDetails).Error(0)
}

type mockScanFormatter struct {
	mock.Mock
}

func (m *mockScanFormatter) FormatScanResponse(response *domain.ScanResponse, format domain.OutputFormat, writer io.Writer, showDetails bool) error {
	return m.Called(response, format, writer, showDetails).Error(0)
}

type mockCompareConfigLoader struct {
	mock.Mock
}

func (m *mockCompareConfigLoader) LoadCompareConfig(configPath string) (*domain.CompareRequest, error) {
	args := m.Called(configPath)
	if req := args.Get(0); req != nil {
		return req.(*domain.CompareRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockScanConfigLoader struct {
	mock.Mock
}

func (m *mockScanConfigLoader) LoadScanConfig(configPath string) (*domain.ScanRequest, error) {
	args := m.Called(configPath)
	if req := args.Get(0); req != nil {
		return req.(*domain.ScanRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

package app

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/ludo-technologies/csim/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type compareMocks struct {
	service      *mockCompareService
	fileReader   *mockFileReader
	formatter    *mockCompareFormatter
	configLoader *mockCompareConfigLoader
}

func newCompareUseCaseWithMocks() (*CompareUseCase, *compareMocks) {
	m := &compareMocks{
		service:      &mockCompareService{},
		fileReader:   &mockFileReader{},
		formatter:    &mockCompareFormatter{},
		configLoader: &mockCompareConfigLoader{},
	}
	return NewCompareUseCase(m.service, m.fileReader, m.formatter, m.configLoader), m
}

func compareRequest() domain.CompareRequest {
	req := domain.DefaultCompareRequest()
	req.File1 = "a.c"
	req.File2 = "b.c"
	req.OutputWriter = &bytes.Buffer{}
	return *req
}

func (m *compareMocks) expectFilesOK() {
	for _, file := range []string{"a.c", "b.c"} {
		m.fileReader.On("FileExists", file).Return(true, nil)
		m.fileReader.On("IsValidCSourceFile", file).Return(true)
	}
}

func TestCompareUseCaseExecute(t *testing.T) {
	uc, m := newCompareUseCaseWithMocks()
	m.expectFilesOK()

	response := &domain.CompareResponse{Similarity: 0.95}
	m.service.On("Compare", mock.Anything, mock.Anything).Return(response, nil)
	m.formatter.On("FormatCompareResponse", response, domain.OutputFormatText, mock.Anything, false).Return(nil)

	err := uc.Execute(context.Background(), compareRequest())
	require.NoError(t, err)

	m.service.AssertExpectations(t)
	m.formatter.AssertExpectations(t)
}

func TestCompareUseCaseValidationFailure(t *testing.T) {
	uc, m := newCompareUseCaseWithMocks()

	req := compareRequest()
	req.File2 = ""

	err := uc.Execute(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	m.service.AssertNotCalled(t, "Compare", mock.Anything, mock.Anything)
}

func TestCompareUseCaseMissingFile(t *testing.T) {
	uc, m := newCompareUseCaseWithMocks()
	m.fileReader.On("FileExists", "a.c").Return(false, nil)

	err := uc.Execute(context.Background(), compareRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrCodeFileNotFound)
	m.service.AssertNotCalled(t, "Compare", mock.Anything, mock.Anything)
}

func TestCompareUseCaseRejectsNonCFile(t *testing.T) {
	uc, m := newCompareUseCaseWithMocks()
	m.fileReader.On("FileExists", "a.c").Return(true, nil)
	m.fileReader.On("IsValidCSourceFile", "a.c").Return(false)

	err := uc.Execute(context.Background(), compareRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a C source file")
}

func TestCompareUseCaseServiceError(t *testing.T) {
	uc, m := newCompareUseCaseWithMocks()
	m.expectFilesOK()
	m.service.On("Compare", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("boom"))

	err := uc.Execute(context.Background(), compareRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "comparison failed")
	m.formatter.AssertNotCalled(t, "FormatCompareResponse", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCompareUseCaseConfigMerge(t *testing.T) {
	uc, m := newCompareUseCaseWithMocks()
	m.expectFilesOK()

	fromConfig := domain.DefaultCompareRequest()
	fromConfig.Rounds = 5
	fromConfig.ShowDetails = true
	m.configLoader.On("LoadCompareConfig", ".csim.toml").Return(fromConfig, nil)

	response := &domain.CompareResponse{Similarity: 1.0}
	m.service.On("Compare", mock.Anything, mock.MatchedBy(func(req *domain.CompareRequest) bool {
		// Config file values apply when the request carries defaults
		return req.Rounds == 5 && req.File1 == "a.c"
	})).Return(response, nil)
	m.formatter.On("FormatCompareResponse", response, domain.OutputFormatText, mock.Anything, true).Return(nil)

	req := compareRequest()
	req.ConfigPath = ".csim.toml"

	require.NoError(t, uc.Execute(context.Background(), req))
	m.service.AssertExpectations(t)
}

func TestCompareUseCaseRequestOverridesConfig(t *testing.T) {
	uc, m := newCompareUseCaseWithMocks()
	m.expectFilesOK()

	fromConfig := domain.DefaultCompareRequest()
	fromConfig.Rounds = 5
	m.configLoader.On("LoadCompareConfig", ".csim.toml").Return(fromConfig, nil)

	response := &domain.CompareResponse{}
	m.service.On("Compare", mock.Anything, mock.MatchedBy(func(req *domain.CompareRequest) bool {
		// An explicit non-default request value wins over the config file
		return req.Rounds == 7
	})).Return(response, nil)
	m.formatter.On("FormatCompareResponse", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	req := compareRequest()
	req.ConfigPath = ".csim.toml"
	req.Rounds = 7

	require.NoError(t, uc.Execute(context.Background(), req))
	m.service.AssertExpectations(t)
}

func TestCompareUseCaseExplicitDefaultOverridesConfig(t *testing.T) {
	uc, m := newCompareUseCaseWithMocks()
	m.expectFilesOK()

	fromConfig := domain.DefaultCompareRequest()
	fromConfig.Rounds = 5
	m.configLoader.On("LoadCompareConfig", ".csim.toml").Return(fromConfig, nil)

	response := &domain.CompareResponse{}
	m.service.On("Compare", mock.Anything, mock.MatchedBy(func(req *domain.CompareRequest) bool {
		// The user passed --rounds 3 on the command line; even though it
		// equals the built-in default, it beats the config file value
		return req.Rounds == 3
	})).Return(response, nil)
	m.formatter.On("FormatCompareResponse", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	req := compareRequest()
	req.ConfigPath = ".csim.toml"
	req.ExplicitFlags = map[string]bool{"rounds": true}

	require.NoError(t, uc.Execute(context.Background(), req))
	m.service.AssertExpectations(t)
}

func TestCompareUseCaseConfigLoadFailure(t *testing.T) {
	uc, m := newCompareUseCaseWithMocks()
	m.configLoader.On("LoadCompareConfig", "bad.toml").Return(nil, fmt.Errorf("no such file"))

	req := compareRequest()
	req.ConfigPath = "bad.toml"

	err := uc.Execute(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestCompareUseCaseBuilder(t *testing.T) {
	t.Run("all dependencies", func(t *testing.T) {
		uc, err := NewCompareUseCaseBuilder().
			WithService(&mockCompareService{}).
			WithFileReader(&mockFileReader{}).
			WithFormatter(&mockCompareFormatter{}).
			WithConfigLoader(&mockCompareConfigLoader{}).
			Build()
		require.NoError(t, err)
		assert.NotNil(t, uc)
	})

	t.Run("missing service", func(t *testing.T) {
		_, err := NewCompareUseCaseBuilder().
			WithFileReader(&mockFileReader{}).
			WithFormatter(&mockCompareFormatter{}).
			WithConfigLoader(&mockCompareConfigLoader{}).
			Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "compare service")
	})

	t.Run("missing formatter", func(t *testing.T) {
		_, err := NewCompareUseCaseBuilder().
			WithService(&mockCompareService{}).
			WithFileReader(&mockFileReader{}).
			WithConfigLoader(&mockCompareConfigLoader{}).
			Build()
		assert.Error(t, err)
	})
}

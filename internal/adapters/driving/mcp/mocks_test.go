package mcp

import (
	"context"

	"github.com/custodia-labs/tclean/internal/core/domain"
	"github.com/custodia-labs/tclean/internal/core/ports/driving"
)

// mockCleaningService is a mock implementation of driving.CleaningService.
type mockCleaningService struct {
	result     domain.ProcessResult
	candidates []driving.Candidate
	err        error

	cleanedPath string
	discovered  driving.RunOptions
}

func (m *mockCleaningService) Clean(_ context.Context, path string) domain.ProcessResult {
	m.cleanedPath = path
	return m.result
}

func (m *mockCleaningService) Run(_ context.Context, _ driving.RunOptions) (*domain.RunSummary, error) {
	return &domain.RunSummary{}, m.err
}

func (m *mockCleaningService) Watch(_ context.Context, _ driving.RunOptions, _ func(domain.ProcessResult)) error {
	return m.err
}

func (m *mockCleaningService) Discover(_ context.Context, opts driving.RunOptions) ([]driving.Candidate, error) {
	m.discovered = opts
	return m.candidates, m.err
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	details []driving.RunDetail
	err     error
	limit   int
}

func (m *mockHistoryService) Recent(_ context.Context, limit int) ([]driving.RunDetail, error) {
	m.limit = limit
	return m.details, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.Settings
	err      error
	unknown  []string
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Set(_, _ string) error {
	return m.err
}

func (m *mockSettingsService) Keys() []string {
	return nil
}

func (m *mockSettingsService) Unknown() []string {
	return m.unknown
}

func (m *mockSettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

func (m *mockSettingsService) Path() string {
	return "/tmp/config.toml"
}

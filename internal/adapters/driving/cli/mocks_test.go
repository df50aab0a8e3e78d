package cli

import (
	"context"

	"github.com/custodia-labs/tclean/internal/core/domain"
	"github.com/custodia-labs/tclean/internal/core/ports/driving"
)

// mockCleaningService is a mock implementation of driving.CleaningService.
type mockCleaningService struct {
	result       domain.ProcessResult
	summary      *domain.RunSummary
	candidates   []driving.Candidate
	watchResults []domain.ProcessResult
	err          error

	cleanedPath string
	runOpts     driving.RunOptions
	watched     bool
}

func (m *mockCleaningService) Clean(_ context.Context, path string) domain.ProcessResult {
	m.cleanedPath = path
	return m.result
}

func (m *mockCleaningService) Run(_ context.Context, opts driving.RunOptions) (*domain.RunSummary, error) {
	m.runOpts = opts
	return m.summary, m.err
}

func (m *mockCleaningService) Watch(
	_ context.Context, opts driving.RunOptions, onResult func(domain.ProcessResult),
) error {
	m.runOpts = opts
	m.watched = true
	for _, r := range m.watchResults {
		onResult(r)
	}
	return m.err
}

func (m *mockCleaningService) Discover(_ context.Context, opts driving.RunOptions) ([]driving.Candidate, error) {
	m.runOpts = opts
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
	getErr   error
	setErr   error
	set      map[string]string
	unknown  []string
}

func newMockSettingsService() *mockSettingsService {
	s := domain.DefaultSettings()
	return &mockSettingsService{settings: &s, set: make(map[string]string)}
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	return m.settings, m.getErr
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) Keys() []string {
	return []string{"output.format", "transcript.interviewer_name"}
}

func (m *mockSettingsService) Unknown() []string {
	return m.unknown
}

func (m *mockSettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

func (m *mockSettingsService) Path() string {
	return "/tmp/tclean/config.toml"
}

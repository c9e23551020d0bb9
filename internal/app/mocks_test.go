package app

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/aigh/aigh/internal/pkg/ai"
	"github.com/aigh/aigh/internal/pkg/history"
	"github.com/aigh/aigh/internal/pkg/hosting"
	"github.com/aigh/aigh/internal/pkg/ui"
)

// MockGitClient is a mock implementation of git.Client.
type MockGitClient struct {
	mock.Mock
}

func (m *MockGitClient) GetStagedDiff(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGitClient) Commit(ctx context.Context, message string) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockGitClient) GetDiffFromBase(ctx context.Context, branch string) (string, error) {
	args := m.Called(ctx, branch)
	return args.String(0), args.Error(1)
}

func (m *MockGitClient) GetCurrentBranch(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGitClient) IsRepository(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

// MockGenerator is a mock implementation of Generator.
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateCommitMessage(ctx context.Context, diff string) ai.CommitResult {
	args := m.Called(ctx, diff)
	return args.Get(0).(ai.CommitResult)
}

func (m *MockGenerator) GeneratePRDescription(ctx context.Context, diff, prTemplate string) ai.PRResult {
	args := m.Called(ctx, diff, prTemplate)
	return args.Get(0).(ai.PRResult)
}

// MockHostingClient is a mock implementation of hosting.Client.
type MockHostingClient struct {
	mock.Mock
}

func (m *MockHostingClient) CreatePullRequest(ctx context.Context, spec hosting.PRSpec) (string, error) {
	args := m.Called(ctx, spec)
	return args.String(0), args.Error(1)
}

// MockTemplateReader is a mock implementation of TemplateReader.
type MockTemplateReader struct {
	mock.Mock
}

func (m *MockTemplateReader) Read() (string, string, error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

// MockUIManager is a mock implementation of ui.Manager.
type MockUIManager struct {
	mock.Mock
}

func (m *MockUIManager) DisplayCommitMessage(message string, warnings []string) {
	m.Called(message, warnings)
}

func (m *MockUIManager) DisplayPullRequest(title, body string) {
	m.Called(title, body)
}

func (m *MockUIManager) EditText(label, content string) (string, error) {
	args := m.Called(label, content)
	return args.String(0), args.Error(1)
}

func (m *MockUIManager) PromptConfirm(message string) (bool, error) {
	args := m.Called(message)
	return args.Bool(0), args.Error(1)
}

func (m *MockUIManager) ShowSpinner(text string) ui.Spinner {
	m.Called(text)
	return &mockSpinner{}
}

func (m *MockUIManager) ShowError(err error) {
	m.Called(err)
}

func (m *MockUIManager) ShowWarning(message string) {
	m.Called(message)
}

func (m *MockUIManager) ShowInfo(message string) {
	m.Called(message)
}

func (m *MockUIManager) ShowSuccess(message string) {
	m.Called(message)
}

type mockSpinner struct{}

func (s *mockSpinner) Start() {}
func (s *mockSpinner) Stop()  {}

// MockHistoryManager is a mock implementation of history.Manager.
type MockHistoryManager struct {
	mock.Mock
}

func (m *MockHistoryManager) Save(entry *history.Entry) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockHistoryManager) List(limit int) ([]*history.Entry, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*history.Entry), args.Error(1)
}

func (m *MockHistoryManager) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// quietUI returns a UI mock that accepts any status output.
func quietUI() *MockUIManager {
	m := new(MockUIManager)
	m.On("ShowSpinner", mock.Anything).Maybe()
	m.On("ShowError", mock.Anything).Maybe()
	m.On("ShowWarning", mock.Anything).Maybe()
	m.On("ShowInfo", mock.Anything).Maybe()
	m.On("ShowSuccess", mock.Anything).Maybe()
	return m
}

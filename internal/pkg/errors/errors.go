// Package errors provides the error taxonomy and logging for aigh.
package errors

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrorCode represents the category of an error.
type ErrorCode int

const (
	// Configuration errors (Exit Code 1)
	ErrMissingAPIKey ErrorCode = iota + 100
	ErrUnsupportedProvider
	ErrInvalidConfigKey
	ErrInvalidConfigValue
	ErrInvalidArguments

	// System errors (Exit Code 2)
	ErrGitCommandFailed ErrorCode = iota + 200
	ErrHostingCommandFailed
	ErrEditorFailed
	ErrFileSystemError
	ErrConfigWrite

	// Backend errors (Exit Code 3)
	ErrAIProviderFailed ErrorCode = iota + 300
	ErrEmptyResponse
	ErrAuthenticationFailed
)

// ExitCode returns the appropriate exit code for an error code.
func (c ErrorCode) ExitCode() int {
	switch {
	case c >= 100 && c < 200:
		return 1 // Configuration errors
	case c >= 200 && c < 300:
		return 2 // System errors
	case c >= 300:
		return 3 // Backend errors
	default:
		return 1
	}
}

// String returns a human-readable name for the error code.
func (c ErrorCode) String() string {
	switch c {
	case ErrMissingAPIKey:
		return "MissingAPIKey"
	case ErrUnsupportedProvider:
		return "UnsupportedProvider"
	case ErrInvalidConfigKey:
		return "InvalidConfigKey"
	case ErrInvalidConfigValue:
		return "InvalidConfigValue"
	case ErrInvalidArguments:
		return "InvalidArguments"
	case ErrGitCommandFailed:
		return "GitCommandFailed"
	case ErrHostingCommandFailed:
		return "HostingCommandFailed"
	case ErrEditorFailed:
		return "EditorFailed"
	case ErrFileSystemError:
		return "FileSystemError"
	case ErrConfigWrite:
		return "ConfigWrite"
	case ErrAIProviderFailed:
		return "AIProviderFailed"
	case ErrEmptyResponse:
		return "EmptyResponse"
	case ErrAuthenticationFailed:
		return "AuthenticationFailed"
	default:
		return "Unknown"
	}
}

// AppError represents an application error with context.
type AppError struct {
	Code       ErrorCode
	Message    string
	Cause      error
	Context    map[string]interface{}
	Suggestion string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithSuggestion adds a suggestion to the error.
func (e *AppError) WithSuggestion(suggestion string) *AppError {
	e.Suggestion = suggestion
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts an AppError from an error chain.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode reports whether any AppError in the chain carries code.
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

// GetExitCode returns the appropriate exit code for an error.
func GetExitCode(err error) int {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code.ExitCode()
	}
	return 1
}

// Common error constructors with suggestions

// NewMissingAPIKeyError creates an error for a provider without a credential.
func NewMissingAPIKeyError(provider, settingKey, envVar string) *AppError {
	return &AppError{
		Code:    ErrMissingAPIKey,
		Message: fmt.Sprintf("API key is required for %s provider", provider),
		Suggestion: fmt.Sprintf("Run 'aigh config set %s <your-key>' or export %s",
			settingKey, envVar),
	}
}

// NewUnsupportedProviderError creates an error for an unknown provider identifier.
func NewUnsupportedProviderError(provider string, supported []string) *AppError {
	return &AppError{
		Code:       ErrUnsupportedProvider,
		Message:    fmt.Sprintf("unsupported AI provider %q", provider),
		Suggestion: fmt.Sprintf("Use one of: %s", strings.Join(supported, ", ")),
	}
}

// NewInvalidConfigKeyError creates an error for a key outside the allow-list.
func NewInvalidConfigKeyError(key string, valid []string) *AppError {
	return &AppError{
		Code:       ErrInvalidConfigKey,
		Message:    fmt.Sprintf("invalid configuration key %q", key),
		Suggestion: fmt.Sprintf("Valid keys are: %s", strings.Join(valid, ", ")),
	}
}

// NewInvalidConfigValueError creates an error for a rejected configuration value.
func NewInvalidConfigValueError(key, value, suggestion string) *AppError {
	return &AppError{
		Code:       ErrInvalidConfigValue,
		Message:    fmt.Sprintf("invalid value %q for %s", value, key),
		Suggestion: suggestion,
	}
}

// NewConfigWriteError creates an error for a settings file that could not be written.
func NewConfigWriteError(path string, err error) *AppError {
	return &AppError{
		Code:       ErrConfigWrite,
		Message:    "failed to write configuration",
		Cause:      err,
		Context:    map[string]interface{}{"path": path},
		Suggestion: "Check that the configuration directory is writable",
	}
}

// NewGitError creates an error for git command failures.
func NewGitError(err error, output string) *AppError {
	appErr := &AppError{
		Code:    ErrGitCommandFailed,
		Message: "git command failed",
		Cause:   err,
	}
	if output != "" {
		appErr.Context = map[string]interface{}{
			"output": output,
		}
	}
	return appErr
}

// NewHostingError creates an error for gh command failures.
func NewHostingError(err error, output string) *AppError {
	appErr := &AppError{
		Code:       ErrHostingCommandFailed,
		Message:    "gh command failed",
		Cause:      err,
		Suggestion: "Make sure the GitHub CLI is installed and authenticated ('gh auth status')",
	}
	if output != "" {
		appErr.Context = map[string]interface{}{
			"output": output,
		}
	}
	return appErr
}

// NewEditorError creates an error for an editor session that failed.
func NewEditorError(editor string, err error) *AppError {
	return &AppError{
		Code:       ErrEditorFailed,
		Message:    fmt.Sprintf("editor %q failed", editor),
		Cause:      err,
		Suggestion: "Set $VISUAL or $EDITOR to a working editor",
	}
}

// NewAIProviderError creates an error for AI provider failures.
func NewAIProviderError(provider string, err error) *AppError {
	return &AppError{
		Code:       ErrAIProviderFailed,
		Message:    fmt.Sprintf("%s provider error", provider),
		Cause:      err,
		Suggestion: "Please check your API key, model name and network connectivity",
	}
}

// NewAuthenticationError creates an error for a rejected credential.
func NewAuthenticationError(provider string) *AppError {
	return &AppError{
		Code:       ErrAuthenticationFailed,
		Message:    fmt.Sprintf("authentication failed with %s", provider),
		Suggestion: "Please check your API key is valid and has not expired",
	}
}

// NewEmptyResponseError creates an error for a backend that answered with no text.
func NewEmptyResponseError(provider string) *AppError {
	return &AppError{
		Code:    ErrEmptyResponse,
		Message: fmt.Sprintf("%s returned an empty response", provider),
	}
}

// FormatError formats an error for user display.
// API keys and other sensitive data are automatically masked.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	appErr := GetAppError(err)
	if appErr != nil {
		sb.WriteString("Error: ")
		sb.WriteString(SanitizeErrorMessage(appErr.Message))

		if appErr.Cause != nil {
			sb.WriteString("\n  Cause: ")
			sb.WriteString(SanitizeErrorMessage(appErr.Cause.Error()))
		}

		if appErr.Suggestion != "" {
			sb.WriteString("\n  Suggestion: ")
			sb.WriteString(appErr.Suggestion)
		}
	} else {
		sb.WriteString("Error: ")
		sb.WriteString(SanitizeErrorMessage(err.Error()))
	}

	return sb.String()
}

// FormatErrorVerbose formats an error with full details for debug mode.
// API keys and other sensitive data are automatically masked.
func FormatErrorVerbose(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	appErr := GetAppError(err)
	if appErr != nil {
		sb.WriteString(fmt.Sprintf("Error [%s]: %s\n", appErr.Code.String(), SanitizeErrorMessage(appErr.Message)))

		if appErr.Cause != nil {
			sb.WriteString(fmt.Sprintf("  Cause: %v\n", SanitizeErrorMessage(appErr.Cause.Error())))
			sb.WriteString("  Error chain:\n")
			printErrorChain(&sb, appErr.Cause, 2)
		}

		if len(appErr.Context) > 0 {
			sb.WriteString("  Context:\n")
			for k, v := range appErr.Context {
				sb.WriteString(fmt.Sprintf("    %s: %v\n", k, SanitizeErrorMessage(fmt.Sprintf("%v", v))))
			}
		}

		if appErr.Suggestion != "" {
			sb.WriteString(fmt.Sprintf("  Suggestion: %s\n", appErr.Suggestion))
		}
	} else {
		sb.WriteString(fmt.Sprintf("Error: %v\n", SanitizeErrorMessage(err.Error())))
		sb.WriteString("  Error chain:\n")
		printErrorChain(&sb, err, 2)
	}

	return sb.String()
}

// printErrorChain prints the error chain with indentation.
func printErrorChain(sb *strings.Builder, err error, indent int) {
	if err == nil {
		return
	}

	prefix := strings.Repeat("  ", indent)
	errMsg := SanitizeErrorMessage(err.Error())
	sb.WriteString(fmt.Sprintf("%s- %T: %v\n", prefix, err, errMsg))

	if unwrapped := errors.Unwrap(err); unwrapped != nil {
		printErrorChain(sb, unwrapped, indent+1)
	}
}

// SanitizeErrorMessage masks API keys and other credentials in a message.
func SanitizeErrorMessage(msg string) string {
	for _, pattern := range apiKeyPatterns {
		msg = pattern.ReplaceAllStringFunc(msg, maskMatch)
	}
	return msg
}

func maskMatch(match string) string {
	if len(match) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(match)-4) + match[len(match)-4:]
}

// apiKeyPatterns matches the key shapes issued by the supported providers.
var apiKeyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`sk-ant-[a-zA-Z0-9_\-]{20,}`),
	regexp.MustCompile(`sk-[a-zA-Z0-9_\-]{20,}`),
	regexp.MustCompile(`AIza[0-9A-Za-z_\-]{30,}`),
}

package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypePrecondition  ErrorType = "PRECONDITION"
	TypeStorage       ErrorType = "STORAGE"
	TypeInput         ErrorType = "INPUT"
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeClipboard     ErrorType = "CLIPBOARD"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if missing, ok := e.Context["missing"].(string); ok && missing != "" {
			msg += fmt.Sprintf(" - %s", missing)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches errors of the same type and message, so sentinel values keep
// working with errors.Is after WithError/WithContext copies.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Page errors
var (
	ErrMissingPrecondition = NewAppError(TypePrecondition, "Required ticket elements not found on page", nil).
				WithSuggestion("Open the issue view and save the full page, then retry")

	ErrPageNotReady = NewAppError(TypePrecondition, "Ticket page did not become ready", nil).
			WithSuggestion("Check that the page shows the ticket from --location")

	ErrReadPage = NewAppError(TypePrecondition, "Failed to read ticket page", nil).
			WithSuggestion("Check the --page path exists and is readable")

	ErrParsePage = NewAppError(TypePrecondition, "Failed to parse ticket page", nil)

	ErrNoTicketSource = NewAppError(TypeInput, "No ticket source given", nil).
				WithSuggestion("Use --page <file> or --key, --type and --summary")
)

// Input errors
var (
	ErrInvalidRole = NewAppError(TypeInput, "Unknown role code", nil).
			WithSuggestion("Valid roles are: BD, FD, TL, SA")

	ErrInvalidToggle = NewAppError(TypeInput, "Invalid toggle value", nil).
				WithSuggestion("Use on/off, true/false or yes/no")

	ErrTooManyExtraTags = NewAppError(TypeInput, "Too many extra tag pairs", nil).
				WithSuggestion("At most 4 extra tag pairs can be stored per project")

	ErrInvalidTagPair = NewAppError(TypeInput, "Invalid extra tag pair", nil).
				WithSuggestion("Use branch:pr, branch: or :pr")

	ErrInvalidRow = NewAppError(TypeInput, "Invalid settings table row", nil).
			WithSuggestion("Rows are numbered 1 to 4")

	ErrExtraTagsDisabled = NewAppError(TypeInput, "Extra tags are disabled", nil).
				WithSuggestion("Enable them first: branchmate tags enable")

	ErrInvalidSelection = NewAppError(TypeInput, "No generated item with that number", nil)

	ErrInvalidTicketKey = NewAppError(TypeInput, "Invalid ticket key", nil).
				WithSuggestion("Ticket keys look like PROJECT-123")

	ErrViewMismatch = NewAppError(TypeInput, "Command not available in the current view", nil).
			WithSuggestion("Switch with 'home' or 'settings' first")

	ErrInvalidFormat = NewAppError(TypeInput, "Unknown output format", nil).
				WithSuggestion("Use --format text or --format json")

	ErrUnknownCommand = NewAppError(TypeInput, "Unknown panel command", nil).
				WithSuggestion("Type 'help' to list the commands")
)

// Storage errors
var (
	ErrOpenStore = NewAppError(TypeStorage, "Failed to open preference store", nil).
			WithSuggestion("Check the database path: branchmate config show")

	ErrMigrateStore = NewAppError(TypeStorage, "Failed to migrate preference store", nil)

	ErrReadPreference = NewAppError(TypeStorage, "Failed to read preference", nil)

	ErrWritePreference = NewAppError(TypeStorage, "Failed to write preference", nil)
)

// Configuration errors
var (
	ErrConfigMissing = NewAppError(TypeConfiguration, "Configuration is missing", nil).
				WithSuggestion("Check ~/.branchmate/config.json or run: branchmate config show")

	ErrInvalidConfig = NewAppError(TypeConfiguration, "Configuration is invalid", nil)

	ErrUnsupportedShell = NewAppError(TypeConfiguration, "Shell not supported for completion", nil).
				WithSuggestion("Print the script with 'branchmate completion bash' or 'branchmate completion zsh'")
)

// Clipboard errors
var (
	ErrClipboardUnavailable = NewAppError(TypeClipboard, "Clipboard unavailable", nil).
				WithSuggestion("Install xclip, xsel or wl-clipboard, or copy the text manually")
)

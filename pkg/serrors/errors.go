package serrors

import "fmt"

// BaseError is the structured error carried across service boundaries.
// Code is a stable machine-readable identifier, Message a developer-facing
// description and LocaleKey the translation key for user-facing surfaces.
type BaseError struct {
	Code         string
	Message      string
	LocaleKey    string
	TemplateData map[string]string
}

func NewError(code, message, localeKey string) *BaseError {
	return &BaseError{
		Code:      code,
		Message:   message,
		LocaleKey: localeKey,
	}
}

// WithTemplateData attaches interpolation values for localized rendering.
func (e *BaseError) WithTemplateData(data map[string]string) *BaseError {
	c := *e
	c.TemplateData = data
	return &c
}

func (e *BaseError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches errors by code so sentinel values survive WithTemplateData copies.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

package config

import "fmt"

// UnsupportedProviderError is returned when a provider block declares a
// provider other than the supported one.
type UnsupportedProviderError struct {
	Name string
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported provider %q: only %q is supported", e.Name, ProviderName)
}

// MalformedDocumentError is returned when the configuration file cannot
// be parsed or its blocks are structurally invalid.
type MalformedDocumentError struct {
	Path       string
	Underlying error
}

func (e *MalformedDocumentError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("malformed configuration %s: %s", e.Path, e.Underlying)
	}
	return fmt.Sprintf("malformed configuration: %s", e.Underlying)
}

// Unwrap returns the underlying error
func (e *MalformedDocumentError) Unwrap() error {
	return e.Underlying
}

// UndefinedVariableError is returned when a var.<name> reference names a
// variable with no declared default.
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable %q", e.Name)
}

// MissingTokenError is returned when the document declares no provider
// token expression.
type MissingTokenError struct{}

func (e *MissingTokenError) Error() string {
	return "no token specified in provider block"
}

// MissingResourceError is returned when the document contains no
// supported resource block.
type MissingResourceError struct{}

func (e *MissingResourceError) Error() string {
	return fmt.Sprintf("missing %q resource block", ResourceType)
}

// AttributeError wraps a resolution failure for a named resource attribute.
type AttributeError struct {
	Name       string
	Underlying error
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("resolving attribute %q: %s", e.Name, e.Underlying)
}

// Unwrap returns the underlying error
func (e *AttributeError) Unwrap() error {
	return e.Underlying
}

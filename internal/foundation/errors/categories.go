package errors

import "maps"

// ErrorCategory is the broad class of an error.
type ErrorCategory string

const (
	// CategoryModel marks an API item graph the generator cannot handle,
	// such as an unknown item kind reaching table or title generation.
	CategoryModel ErrorCategory = "model"
	// CategoryReference marks a cross reference that could not be resolved.
	// These are recovered locally and reported as warnings.
	CategoryReference ErrorCategory = "reference"
	// CategoryRender marks a node the renderer cannot serialize.
	CategoryRender ErrorCategory = "render"

	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates the impact level of an error.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // stops the run
	SeverityError   ErrorSeverity = "error"   // fails the current page or operation
	SeverityWarning ErrorSeverity = "warning" // output continues, possibly degraded
	SeverityInfo    ErrorSeverity = "info"
)

// Canonical context keys.
const (
	ContextAnchor   = "anchor"
	ContextKind     = "kind"
	ContextNodeKind = "node_kind"
	ContextPath     = "path"
)

// ErrorContext provides structured context for errors.
type ErrorContext map[string]any

// Set adds or updates a context value.
func (c ErrorContext) Set(key string, value any) ErrorContext {
	if c == nil {
		c = make(ErrorContext)
	}
	c[key] = value
	return c
}

// Get returns the value of key.
func (c ErrorContext) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	value, exists := c[key]
	return value, exists
}

// GetString returns the value of key when it is a string.
func (c ErrorContext) GetString(key string) (string, bool) {
	if value, exists := c.Get(key); exists {
		if str, ok := value.(string); ok {
			return str, true
		}
	}
	return "", false
}

// Merge combines two contexts, with other taking precedence.
func (c ErrorContext) Merge(other ErrorContext) ErrorContext {
	if c == nil {
		return other
	}
	if other == nil {
		return c
	}
	result := make(ErrorContext, len(c)+len(other))
	maps.Copy(result, c)
	maps.Copy(result, other)
	return result
}

package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *CraftError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *CraftError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Load errors. Any of these aborts a registry load.

func LoadFailed(stage string, cause error) *CraftError {
	return Wrap(cause, CategoryData, SeverityFatal, "registry load failed").
		WithContext("stage", stage)
}

func RecipeInvalid(key string, cause error) *CraftError {
	return Wrap(cause, CategoryData, SeverityFatal, "invalid recipe").
		WithContext("recipe", key)
}

func TagInvalid(tag string, cause error) *CraftError {
	return Wrap(cause, CategoryData, SeverityFatal, "invalid tag reference").
		WithContext("tag", tag)
}

// Query errors

func QueryInvalid(query string, cause error) *CraftError {
	return Wrap(cause, CategoryValidation, SeverityWarning, "invalid query").
		WithContext("query", query)
}

// Session errors

func SessionNotFound(id string) *CraftError {
	return NotFound("session", id)
}

func SessionLimit(max int) *CraftError {
	return New(CategoryRuntime, SeverityWarning, "too many browsing sessions").
		WithContext("max", max)
}

// Internal errors

func InternalError(message string, cause error) *CraftError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}

package errors

// Convenience functions for common error patterns

// Config errors

// ConfigurationError reports invalid site configuration (navigation, features,
// docsite.yaml). It is surfaced before anything is delegated.
func ConfigurationError(message string) *SiteError {
	return New(CategoryConfig, SeverityFatal, message)
}

func ConfigInvalid(path string, cause error) *SiteError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration file invalid").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *SiteError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Delegation errors

// DelegationFailure wraps a failed external tool invocation. exitCode is the
// tool's own exit status; pass 0 when the tool never started.
func DelegationFailure(tool string, exitCode int, cause error) *SiteError {
	e := Wrap(cause, CategoryDelegation, SeverityFatal, "delegated command failed").
		WithContext("tool", tool)
	e.ExitCode = exitCode
	return e
}

// Filesystem errors

func CopyFailure(src, dst string, cause error) *SiteError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "copy failed").
		WithContext("source", src).
		WithContext("destination", dst)
}

func FileSystemError(operation string, cause error) *SiteError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "filesystem operation failed").
		WithContext("operation", operation)
}

// Internal errors

func InternalError(message string, cause error) *SiteError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}

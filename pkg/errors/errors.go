// Package errors defines the error taxonomy of the bridge. Sentinel errors
// cover plumbing failures (config files, paths), while BridgeError carries a
// machine-readable Kind and Code that the CLI turns into an error object and
// an exit code.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
)

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigDirectory   = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate  = fmt.Errorf("failed to create config file")
	ErrConfigFileRename  = fmt.Errorf("failed to rename temporary config file")
	ErrConfigFileExists  = fmt.Errorf("configuration file already exists (use --force to overwrite)")
	ErrUnknownConfigKey  = fmt.Errorf("unknown configuration key")
	ErrInvalidLogLevel   = fmt.Errorf("invalid log level")

	// Store definition errors.
	ErrStoreRoot         = fmt.Errorf("store file root must be a mapping")
	ErrStoreFilters      = fmt.Errorf("filters must be a mapping")
	ErrStoreEmptyFilters = fmt.Errorf("at least one filter type must be specified")
	ErrStoreID           = fmt.Errorf("invalid store ID")
	ErrStoreMissingField = fmt.Errorf("missing required field")

	// Package database errors.
	ErrDatabaseOpen = fmt.Errorf("failed to open package database")
	ErrListParse    = fmt.Errorf("failed to parse package list")
	ErrDecompress   = fmt.Errorf("failed to decompress package list")

	// Supervisor errors.
	ErrStatusChannel = fmt.Errorf("failed to set up status channel")
	ErrProcessStart  = fmt.Errorf("failed to start process")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Kind is the coarse class of a BridgeError. Callers branch on it.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindExternalTool Kind = "external_tool"
	KindConfig       Kind = "config"
	KindInternal     Kind = "internal"
)

// Code is the machine-readable error code reported to the UI.
type Code string

const (
	CodeInvalidInput     Code = "INVALID_INPUT"
	CodeInvalidArguments Code = "INVALID_ARGUMENTS"
	CodeInvalidQuery     Code = "INVALID_QUERY"
	CodeInvalidCategory  Code = "INVALID_CATEGORY"
	CodeInvalidTab       Code = "INVALID_TAB"
	CodeEssentialPackage Code = "ESSENTIAL_PACKAGE"

	CodePackageNotFound Code = "PACKAGE_NOT_FOUND"
	CodeStoreNotFound   Code = "STORE_NOT_FOUND"

	CodeLocked          Code = "LOCKED"
	CodeDiskFull        Code = "DISK_FULL"
	CodeNetworkError    Code = "NETWORK_ERROR"
	CodeOperationFailed Code = "OPERATION_FAILED"
	CodeInstallFailed   Code = "INSTALL_FAILED"
	CodeRemoveFailed    Code = "REMOVE_FAILED"
	CodeUpdateFailed    Code = "UPDATE_FAILED"
	CodeCommandFailed   Code = "COMMAND_FAILED"

	CodeConfigError Code = "CONFIG_ERROR"
	CodeCacheError  Code = "CACHE_ERROR"
	CodeInternal    Code = "INTERNAL_ERROR"
)

// Exit codes for the CLI process.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitUnexpected = 2
)

// BridgeError is a structured error with a kind, a code and optional details.
type BridgeError struct {
	Kind    Kind   `json:"-"`
	Code    Code   `json:"code"`
	Message string `json:"error"`
	Details string `json:"details,omitempty"`
	Cause   error  `json:"-"`
}

// Error implements the error interface.
func (e *BridgeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface.
func (e *BridgeError) Unwrap() error {
	return e.Cause
}

// WithDetails sets the free-form details text.
func (e *BridgeError) WithDetails(details string) *BridgeError {
	e.Details = details
	return e
}

// ToJSON converts the error to the single-line object printed on stderr.
func (e *BridgeError) ToJSON() string {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf(`{"error":%q,"code":%q}`, e.Message, e.Code)
	}
	return string(data)
}

// New creates a BridgeError.
func New(kind Kind, code Code, message string) *BridgeError {
	return &BridgeError{Kind: kind, Code: code, Message: message}
}

// Validation creates an input validation error.
func Validation(code Code, message string) *BridgeError {
	return New(KindValidation, code, message)
}

// NotFound creates a not-found error.
func NotFound(code Code, message string) *BridgeError {
	return New(KindNotFound, code, message)
}

// PackageNotFound creates the error for a package absent from the collection.
func PackageNotFound(name string) *BridgeError {
	return NotFound(CodePackageNotFound, fmt.Sprintf("Package not found: %s", name)).
		WithDetails(name)
}

// StoreNotFound creates the error for an unknown store id.
func StoreNotFound(id string) *BridgeError {
	return NotFound(CodeStoreNotFound, fmt.Sprintf("Store '%s' not found", id)).
		WithDetails(fmt.Sprintf("No store configuration found with id '%s'", id))
}

// ExternalTool creates an error for a failed run of the wrapped tool.
func ExternalTool(code Code, message, diagnostics string) *BridgeError {
	return New(KindExternalTool, code, message).WithDetails(diagnostics)
}

// Config creates a configuration error.
func Config(message string, cause error) *BridgeError {
	e := New(KindConfig, CodeConfigError, message)
	e.Cause = cause
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// Internal wraps an unexpected failure.
func Internal(message string, cause error) *BridgeError {
	e := New(KindInternal, CodeInternal, message)
	e.Cause = cause
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// Cache wraps a failure to read the package database.
func Cache(message string, cause error) *BridgeError {
	e := Internal(message, cause)
	e.Code = CodeCacheError
	return e
}

// As returns the BridgeError in err's chain, if any.
func As(err error) (*BridgeError, bool) {
	var be *BridgeError
	if stderrors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	if be, ok := As(err); ok {
		return be.Kind
	}
	return KindInternal
}

// CodeOf returns the code of err, or CodeInternal for foreign errors.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	if be, ok := As(err); ok {
		return be.Code
	}
	return CodeInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// ExitCode maps an error to the process exit code: expected failures exit
// with 1, anything internal or unclassified with 2.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if KindOf(err) == KindInternal {
		return ExitUnexpected
	}
	return ExitFailure
}

// Normalize turns any error into a BridgeError suitable for rendering.
func Normalize(err error) *BridgeError {
	if err == nil {
		return nil
	}
	if be, ok := As(err); ok {
		return be
	}
	return Internal(fmt.Sprintf("Unexpected error: %v", err), err)
}

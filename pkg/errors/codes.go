package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes shared by every layer.
const (
	ErrCodeInternal      ErrorCode = "COMMON_001"
	ErrCodeBadRequest    ErrorCode = "COMMON_002"
	ErrCodeNotFound      ErrorCode = "COMMON_003"
	ErrCodeConflict      ErrorCode = "COMMON_004"
	ErrCodeValidation    ErrorCode = "COMMON_005"
	ErrCodeSerialization ErrorCode = "COMMON_006"
	ErrCodeUnavailable   ErrorCode = "COMMON_007"
)

// Taxonomy module error codes.
//
// ErrCodeTaxonomyUnknown is the engine's only contract-violation condition:
// a caller passed a taxonomy identifier that is not in the registry.  It is
// deliberately distinct from the ordinary "no mapping found" outcome, which
// is represented by nil results and empty lists, never by an error.
const (
	ErrCodeTaxonomyUnknown  ErrorCode = "TAX_001"
	ErrCodeCodeInvalid      ErrorCode = "TAX_002"
	ErrCodeNodeNotFound     ErrorCode = "TAX_003"
	ErrCodeLookupMissing    ErrorCode = "TAX_004"
	ErrCodeDirectionInvalid ErrorCode = "TAX_005"
)

// Dataset / loader error codes.
const (
	ErrCodeDatasetMissing ErrorCode = "DATA_001"
	ErrCodeDatasetParse   ErrorCode = "DATA_002"
	ErrCodeDatasetInvalid ErrorCode = "DATA_003"
)

// Builder library error codes.
const (
	ErrCodeTreeNotFound    ErrorCode = "BLD_001"
	ErrCodeTreeInvalid     ErrorCode = "BLD_002"
	ErrCodeProvenanceEmpty ErrorCode = "BLD_003"
	ErrCodeStoreError      ErrorCode = "BLD_004"
)

// Fuzzy table builder error codes.
const (
	ErrCodeFuzzyBuildFailed  ErrorCode = "FUZ_001"
	ErrCodeFuzzyInputInvalid ErrorCode = "FUZ_002"
)

// Short aliases used at call sites.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeConflict     = ErrCodeConflict
	CodeOK           = ErrorCode("OK")
	CodeUnknown      = ErrorCode("UNKNOWN")
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:      http.StatusInternalServerError,
	ErrCodeBadRequest:    http.StatusBadRequest,
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeConflict:      http.StatusConflict,
	ErrCodeValidation:    http.StatusUnprocessableEntity,
	ErrCodeSerialization: http.StatusInternalServerError,
	ErrCodeUnavailable:   http.StatusServiceUnavailable,

	ErrCodeTaxonomyUnknown:  http.StatusBadRequest,
	ErrCodeCodeInvalid:      http.StatusBadRequest,
	ErrCodeNodeNotFound:     http.StatusNotFound,
	ErrCodeLookupMissing:    http.StatusInternalServerError,
	ErrCodeDirectionInvalid: http.StatusBadRequest,

	ErrCodeDatasetMissing: http.StatusServiceUnavailable,
	ErrCodeDatasetParse:   http.StatusInternalServerError,
	ErrCodeDatasetInvalid: http.StatusInternalServerError,

	ErrCodeTreeNotFound:    http.StatusNotFound,
	ErrCodeTreeInvalid:     http.StatusBadRequest,
	ErrCodeProvenanceEmpty: http.StatusBadRequest,
	ErrCodeStoreError:      http.StatusInternalServerError,

	ErrCodeFuzzyBuildFailed:  http.StatusInternalServerError,
	ErrCodeFuzzyInputInvalid: http.StatusBadRequest,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:      "internal server error",
	ErrCodeBadRequest:    "bad request",
	ErrCodeNotFound:      "resource not found",
	ErrCodeConflict:      "resource conflict",
	ErrCodeValidation:    "validation failed",
	ErrCodeSerialization: "serialization failed",
	ErrCodeUnavailable:   "service unavailable",

	ErrCodeTaxonomyUnknown:  "unrecognized taxonomy identifier",
	ErrCodeCodeInvalid:      "invalid classification code",
	ErrCodeNodeNotFound:     "classification node not found",
	ErrCodeLookupMissing:    "lookup table not loaded for taxonomy",
	ErrCodeDirectionInvalid: "invalid mapping direction",

	ErrCodeDatasetMissing: "taxonomy dataset file missing",
	ErrCodeDatasetParse:   "failed to parse taxonomy dataset",
	ErrCodeDatasetInvalid: "taxonomy dataset failed validation",

	ErrCodeTreeNotFound:    "authored tree not found",
	ErrCodeTreeInvalid:     "invalid authored tree",
	ErrCodeProvenanceEmpty: "provenance record is empty",
	ErrCodeStoreError:      "builder library store error",

	ErrCodeFuzzyBuildFailed:  "fuzzy table construction failed",
	ErrCodeFuzzyInputInvalid: "invalid fuzzy table input",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

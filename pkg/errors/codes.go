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

// Common Error Codes
const (
	ErrCodeInternal        ErrorCode = "COMMON_001"
	ErrCodeBadRequest      ErrorCode = "COMMON_002"
	ErrCodeUnauthorized    ErrorCode = "COMMON_003"
	ErrCodeForbidden       ErrorCode = "COMMON_004"
	ErrCodeNotFound        ErrorCode = "COMMON_005"
	ErrCodeConflict        ErrorCode = "COMMON_006"
	ErrCodeValidation      ErrorCode = "COMMON_007"
	ErrCodeSerialization   ErrorCode = "COMMON_008"
	ErrCodeCacheError      ErrorCode = "COMMON_009"
	ErrCodeExternalService ErrorCode = "COMMON_010"

	// CodeUnknown marks an error whose chain carries no AppError.
	CodeUnknown ErrorCode = "UNKNOWN"
	// CodeOK is what GetCode reports for a nil error.
	CodeOK ErrorCode = "OK"
)

// Short aliases used at call sites throughout the application.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeUnauthorized = ErrCodeUnauthorized
	CodeForbidden    = ErrCodeForbidden
	CodeNotFound     = ErrCodeNotFound
	CodeConflict     = ErrCodeConflict
	CodeValidation   = ErrCodeValidation

	CodeCustomerNotFound      = ErrCodeCustomerNotFound
	CodeSubsidyNotFound       = ErrCodeSubsidyNotFound
	CodeSubsidyFilterInvalid  = ErrCodeSubsidyFilterInvalid
	CodeRelationNotFound      = ErrCodeRelationNotFound
	CodeRelationStatusInvalid = ErrCodeRelationStatusInvalid
	CodeProposalRenderFailed  = ErrCodeProposalRenderFailed
	CodeProposalFontMissing   = ErrCodeProposalFontMissing
	CodeExportFailed          = ErrCodeExportFailed
)

// Customer Module Error Codes
const (
	ErrCodeCustomerNotFound ErrorCode = "CUS_001"
)

// Subsidy Module Error Codes
const (
	ErrCodeSubsidyNotFound      ErrorCode = "SUB_001"
	ErrCodeSubsidyFilterInvalid ErrorCode = "SUB_002"
)

// Relation Module Error Codes
const (
	ErrCodeRelationNotFound      ErrorCode = "REL_001"
	ErrCodeRelationStatusInvalid ErrorCode = "REL_002"
)

// Proposal Module Error Codes
const (
	ErrCodeProposalRenderFailed ErrorCode = "PRO_001"
	ErrCodeProposalFontMissing  ErrorCode = "PRO_002"
)

// Export Module Error Codes
const (
	ErrCodeExportFailed ErrorCode = "EXP_001"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeForbidden:       http.StatusForbidden,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeConflict:        http.StatusConflict,
	ErrCodeValidation:      http.StatusUnprocessableEntity,
	ErrCodeSerialization:   http.StatusInternalServerError,
	ErrCodeCacheError:      http.StatusInternalServerError,
	ErrCodeExternalService: http.StatusInternalServerError,

	ErrCodeCustomerNotFound: http.StatusNotFound,

	ErrCodeSubsidyNotFound:      http.StatusNotFound,
	ErrCodeSubsidyFilterInvalid: http.StatusBadRequest,

	ErrCodeRelationNotFound:      http.StatusNotFound,
	ErrCodeRelationStatusInvalid: http.StatusBadRequest,

	ErrCodeProposalRenderFailed: http.StatusInternalServerError,
	ErrCodeProposalFontMissing:  http.StatusInternalServerError,

	ErrCodeExportFailed: http.StatusInternalServerError,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:        "internal server error",
	ErrCodeBadRequest:      "bad request",
	ErrCodeUnauthorized:    "unauthorized",
	ErrCodeForbidden:       "forbidden",
	ErrCodeNotFound:        "resource not found",
	ErrCodeConflict:        "resource conflict",
	ErrCodeValidation:      "validation failed",
	ErrCodeSerialization:   "serialization failed",
	ErrCodeCacheError:      "cache error",
	ErrCodeExternalService: "external service error",

	ErrCodeCustomerNotFound: "customer not found",

	ErrCodeSubsidyNotFound:      "subsidy not found",
	ErrCodeSubsidyFilterInvalid: "invalid subsidy filter",

	ErrCodeRelationNotFound:      "relation not found",
	ErrCodeRelationStatusInvalid: "invalid proposal status",

	ErrCodeProposalRenderFailed: "failed to render proposal document",
	ErrCodeProposalFontMissing:  "proposal font not available",

	ErrCodeExportFailed: "failed to export subsidies",
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

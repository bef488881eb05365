package apperror

import "net/http"

// Codes carried in the error envelope. Feature packages pair them with
// their own messages in internal/<feature>/errors.
const (
	CodeInvalidInput    = "INVALID_INPUT"      // 400
	CodeInvalidState    = "INVALID_STATE"      // 400, transition not allowed from the current status
	CodeUnauthorized    = "UNAUTHORIZED"       // 401
	CodeForbidden       = "FORBIDDEN"          // 403
	CodeNotFound        = "NOT_FOUND"          // 404
	CodeDuplicate       = "DUPLICATE_RESOURCE" // 409
	CodeConflict        = "CONFLICT"           // 409, lost a concurrent update
	CodeTooManyRequests = "TOO_MANY_REQUESTS"  // 429
	CodeInternalError   = "INTERNAL_ERROR"     // 500
)

var (
	ErrNotFound        = New(CodeNotFound, "Resource not found", http.StatusNotFound)
	ErrUnauthorized    = New(CodeUnauthorized, "Authentication is required", http.StatusUnauthorized)
	ErrForbidden       = New(CodeForbidden, "You do not have permission to access this resource", http.StatusForbidden)
	ErrTooManyRequests = New(CodeTooManyRequests, "Too many requests, slow down", http.StatusTooManyRequests)
	ErrInternal        = New(CodeInternalError, "An unexpected error occurred", http.StatusInternalServerError)
)

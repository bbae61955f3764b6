package apperrors

// Error codes grouped by domain.
const (
	// Authentication and authorization
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"
	CodeInvalidUserRole  ErrorCode = "INVALID_USER_ROLE"
	CodeInvalidSalary    ErrorCode = "INVALID_SALARY"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"

	// Resources
	CodeUserNotFound        ErrorCode = "USER_NOT_FOUND"
	CodeJobNotFound         ErrorCode = "JOB_NOT_FOUND"
	CodeApplicationNotFound ErrorCode = "APPLICATION_NOT_FOUND"

	// Business logic
	CodeEmailAlreadyExists ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeAlreadyApplied     ErrorCode = "ALREADY_APPLIED"
	CodeJobNotActive       ErrorCode = "JOB_NOT_ACTIVE"
	CodeInvalidTransition  ErrorCode = "INVALID_TRANSITION"
	CodeCannotModifySelf   ErrorCode = "CANNOT_MODIFY_SELF"

	// System
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeUnavailable   ErrorCode = "SERVICE_UNAVAILABLE"
)

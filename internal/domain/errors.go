package domain

import "errors"

// ErrorKind 错误分类（handler 层据此映射 HTTP 状态码，且只映射一次）
type ErrorKind string

const (
	KindUnauthenticated ErrorKind = "unauthenticated" // no identity could be established
	KindForbidden       ErrorKind = "forbidden"       // valid identity, disallowed action
	KindValidation      ErrorKind = "validation"      // malformed payload
	KindNotFound        ErrorKind = "not_found"
	KindConflict        ErrorKind = "conflict"
	KindInternal        ErrorKind = "internal"
)

// ValidationReason 载荷校验失败的细分原因
type ValidationReason string

const (
	ReasonMissingLocation       ValidationReason = "missing_location"
	ReasonMissingUserFields     ValidationReason = "missing_user_fields"
	ReasonMissingHospitalFields ValidationReason = "missing_hospital_fields"
	ReasonRoleFieldMismatch     ValidationReason = "role_field_mismatch"
)

// Error 领域错误。Message 可直接返回给调用方；Internal 类错误只返回通用文案。
type Error struct {
	Kind    ErrorKind
	Reason  ValidationReason // set for validation/forbidden payload errors only
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func Unauthenticated(msg string) error { return &Error{Kind: KindUnauthenticated, Message: msg} }

func Forbidden(msg string) error { return &Error{Kind: KindForbidden, Message: msg} }

// ForbiddenShape marks a role/payload shape mismatch (e.g. a user-role caller
// supplying a hospitalData sequence). Distinct from plain Forbidden so tests
// can assert on the reason.
func ForbiddenShape(msg string) error {
	return &Error{Kind: KindForbidden, Reason: ReasonRoleFieldMismatch, Message: msg}
}

func Invalid(reason ValidationReason, msg string) error {
	return &Error{Kind: KindValidation, Reason: reason, Message: msg}
}

func NotFound(msg string) error { return &Error{Kind: KindNotFound, Message: msg} }

func Conflict(msg string) error { return &Error{Kind: KindConflict, Message: msg} }

// Internal wraps a persistence/unexpected failure. The cause is for logs only
// and must never reach the client.
func Internal(msg string, cause error) error {
	return &Error{Kind: KindInternal, Message: msg, cause: cause}
}

// AsError 提取领域错误；未分类错误按 Internal 处理
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// KindOf returns the error's kind, defaulting to KindInternal for
// unclassified errors.
func KindOf(err error) ErrorKind {
	if de, ok := AsError(err); ok {
		return de.Kind
	}
	return KindInternal
}

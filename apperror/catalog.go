package apperror

import "net/http"

// Status catalog: one constructor per HTTP status the toolkit classifies.
// Each presets the status code and a stable default code string; options
// are applied afterwards, so callers can override both.

func statusError(status int, code, message string, opts []Option) *AppError {
	e := &AppError{
		Message:     message,
		StatusCode:  status,
		Code:        code,
		Operational: true,
		pcs:         capture(4),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BadRequest creates a 400 Bad Request error.
func BadRequest(message string, opts ...Option) *AppError {
	return statusError(http.StatusBadRequest, "BAD_REQUEST", message, opts)
}

// Unauthorized creates a 401 Unauthorized error.
func Unauthorized(message string, opts ...Option) *AppError {
	return statusError(http.StatusUnauthorized, "UNAUTHORIZED", message, opts)
}

// PaymentRequired creates a 402 Payment Required error.
func PaymentRequired(message string, opts ...Option) *AppError {
	return statusError(http.StatusPaymentRequired, "PAYMENT_REQUIRED", message, opts)
}

// Forbidden creates a 403 Forbidden error.
func Forbidden(message string, opts ...Option) *AppError {
	return statusError(http.StatusForbidden, "FORBIDDEN", message, opts)
}

// NotFound creates a 404 Not Found error.
func NotFound(message string, opts ...Option) *AppError {
	return statusError(http.StatusNotFound, "NOT_FOUND", message, opts)
}

// MethodNotAllowed creates a 405 Method Not Allowed error.
func MethodNotAllowed(message string, opts ...Option) *AppError {
	return statusError(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", message, opts)
}

// NotAcceptable creates a 406 Not Acceptable error.
func NotAcceptable(message string, opts ...Option) *AppError {
	return statusError(http.StatusNotAcceptable, "NOT_ACCEPTABLE", message, opts)
}

// ProxyAuthRequired creates a 407 Proxy Authentication Required error.
func ProxyAuthRequired(message string, opts ...Option) *AppError {
	return statusError(http.StatusProxyAuthRequired, "PROXY_AUTH_REQUIRED", message, opts)
}

// RequestTimeout creates a 408 Request Timeout error.
func RequestTimeout(message string, opts ...Option) *AppError {
	return statusError(http.StatusRequestTimeout, "REQUEST_TIMEOUT", message, opts)
}

// Conflict creates a 409 Conflict error.
func Conflict(message string, opts ...Option) *AppError {
	return statusError(http.StatusConflict, "CONFLICT", message, opts)
}

// Gone creates a 410 Gone error.
func Gone(message string, opts ...Option) *AppError {
	return statusError(http.StatusGone, "GONE", message, opts)
}

// LengthRequired creates a 411 Length Required error.
func LengthRequired(message string, opts ...Option) *AppError {
	return statusError(http.StatusLengthRequired, "LENGTH_REQUIRED", message, opts)
}

// PreconditionFailed creates a 412 Precondition Failed error.
func PreconditionFailed(message string, opts ...Option) *AppError {
	return statusError(http.StatusPreconditionFailed, "PRECONDITION_FAILED", message, opts)
}

// PayloadTooLarge creates a 413 Request Entity Too Large error.
func PayloadTooLarge(message string, opts ...Option) *AppError {
	return statusError(http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", message, opts)
}

// URITooLong creates a 414 Request URI Too Long error.
func URITooLong(message string, opts ...Option) *AppError {
	return statusError(http.StatusRequestURITooLong, "URI_TOO_LONG", message, opts)
}

// UnsupportedMediaType creates a 415 Unsupported Media Type error.
func UnsupportedMediaType(message string, opts ...Option) *AppError {
	return statusError(http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", message, opts)
}

// RangeNotSatisfiable creates a 416 Requested Range Not Satisfiable error.
func RangeNotSatisfiable(message string, opts ...Option) *AppError {
	return statusError(http.StatusRequestedRangeNotSatisfiable, "RANGE_NOT_SATISFIABLE", message, opts)
}

// ExpectationFailed creates a 417 Expectation Failed error.
func ExpectationFailed(message string, opts ...Option) *AppError {
	return statusError(http.StatusExpectationFailed, "EXPECTATION_FAILED", message, opts)
}

// Teapot creates a 418 I'm a teapot error.
func Teapot(message string, opts ...Option) *AppError {
	return statusError(http.StatusTeapot, "TEAPOT", message, opts)
}

// MisdirectedRequest creates a 421 Misdirected Request error.
func MisdirectedRequest(message string, opts ...Option) *AppError {
	return statusError(http.StatusMisdirectedRequest, "MISDIRECTED_REQUEST", message, opts)
}

// UnprocessableEntity creates a 422 Unprocessable Entity error.
func UnprocessableEntity(message string, opts ...Option) *AppError {
	return statusError(http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY", message, opts)
}

// Locked creates a 423 Locked error.
func Locked(message string, opts ...Option) *AppError {
	return statusError(http.StatusLocked, "LOCKED", message, opts)
}

// FailedDependency creates a 424 Failed Dependency error.
func FailedDependency(message string, opts ...Option) *AppError {
	return statusError(http.StatusFailedDependency, "FAILED_DEPENDENCY", message, opts)
}

// TooEarly creates a 425 Too Early error.
func TooEarly(message string, opts ...Option) *AppError {
	return statusError(http.StatusTooEarly, "TOO_EARLY", message, opts)
}

// UpgradeRequired creates a 426 Upgrade Required error.
func UpgradeRequired(message string, opts ...Option) *AppError {
	return statusError(http.StatusUpgradeRequired, "UPGRADE_REQUIRED", message, opts)
}

// PreconditionRequired creates a 428 Precondition Required error.
func PreconditionRequired(message string, opts ...Option) *AppError {
	return statusError(http.StatusPreconditionRequired, "PRECONDITION_REQUIRED", message, opts)
}

// TooManyRequests creates a 429 Too Many Requests error.
func TooManyRequests(message string, opts ...Option) *AppError {
	return statusError(http.StatusTooManyRequests, "TOO_MANY_REQUESTS", message, opts)
}

// RequestHeaderFieldsTooLarge creates a 431 Request Header Fields Too Large error.
func RequestHeaderFieldsTooLarge(message string, opts ...Option) *AppError {
	return statusError(http.StatusRequestHeaderFieldsTooLarge, "REQUEST_HEADER_FIELDS_TOO_LARGE", message, opts)
}

// UnavailableForLegalReasons creates a 451 Unavailable For Legal Reasons error.
func UnavailableForLegalReasons(message string, opts ...Option) *AppError {
	return statusError(http.StatusUnavailableForLegalReasons, "UNAVAILABLE_FOR_LEGAL_REASONS", message, opts)
}

// Internal creates a 500 Internal Server Error.
func Internal(message string, opts ...Option) *AppError {
	return statusError(http.StatusInternalServerError, "INTERNAL", message, opts)
}

// NotImplemented creates a 501 Not Implemented error.
func NotImplemented(message string, opts ...Option) *AppError {
	return statusError(http.StatusNotImplemented, "NOT_IMPLEMENTED", message, opts)
}

// BadGateway creates a 502 Bad Gateway error.
func BadGateway(message string, opts ...Option) *AppError {
	return statusError(http.StatusBadGateway, "BAD_GATEWAY", message, opts)
}

// ServiceUnavailable creates a 503 Service Unavailable error.
func ServiceUnavailable(message string, opts ...Option) *AppError {
	return statusError(http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", message, opts)
}

// GatewayTimeout creates a 504 Gateway Timeout error.
func GatewayTimeout(message string, opts ...Option) *AppError {
	return statusError(http.StatusGatewayTimeout, "GATEWAY_TIMEOUT", message, opts)
}

// HTTPVersionNotSupported creates a 505 HTTP Version Not Supported error.
func HTTPVersionNotSupported(message string, opts ...Option) *AppError {
	return statusError(http.StatusHTTPVersionNotSupported, "HTTP_VERSION_NOT_SUPPORTED", message, opts)
}

// VariantAlsoNegotiates creates a 506 Variant Also Negotiates error.
func VariantAlsoNegotiates(message string, opts ...Option) *AppError {
	return statusError(http.StatusVariantAlsoNegotiates, "VARIANT_ALSO_NEGOTIATES", message, opts)
}

// InsufficientStorage creates a 507 Insufficient Storage error.
func InsufficientStorage(message string, opts ...Option) *AppError {
	return statusError(http.StatusInsufficientStorage, "INSUFFICIENT_STORAGE", message, opts)
}

// LoopDetected creates a 508 Loop Detected error.
func LoopDetected(message string, opts ...Option) *AppError {
	return statusError(http.StatusLoopDetected, "LOOP_DETECTED", message, opts)
}

// NotExtended creates a 510 Not Extended error.
func NotExtended(message string, opts ...Option) *AppError {
	return statusError(http.StatusNotExtended, "NOT_EXTENDED", message, opts)
}

// NetworkAuthenticationRequired creates a 511 Network Authentication Required error.
func NetworkAuthenticationRequired(message string, opts ...Option) *AppError {
	return statusError(http.StatusNetworkAuthenticationRequired, "NETWORK_AUTHENTICATION_REQUIRED", message, opts)
}

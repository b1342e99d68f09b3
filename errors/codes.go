package errors

// ErrorCode identifies an application error category
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS    ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1005

	// Meetings
	ErrorCode_MEETING_NOT_FOUND   ErrorCode = 2000
	ErrorCode_SLOT_ALREADY_BOOKED ErrorCode = 2001
	ErrorCode_INVALID_TIME_SLOT   ErrorCode = 2002
	ErrorCode_INVALID_EVENT_DATE  ErrorCode = 2003

	// Store
	ErrorCode_STORE_NOT_CONFIGURED ErrorCode = 3000
	ErrorCode_DB_CONNECTION_FAILED ErrorCode = 3001
	ErrorCode_DB_QUERY_FAILED      ErrorCode = 3002
	ErrorCode_SCHEMA_MISMATCH      ErrorCode = 3003

	// Integrations
	ErrorCode_REALTIME_FAILED ErrorCode = 4000
	ErrorCode_CACHE_FAILED    ErrorCode = 4001
	ErrorCode_EXPORT_FAILED   ErrorCode = 4002
)

// String returns the symbolic name of the error code
func (c ErrorCode) String() string {
	switch c {
	case ErrorCode_HTTP_OK:
		return "OK"
	case ErrorCode_INTERNAL:
		return "INTERNAL"
	case ErrorCode_INVALID_ARGUMENT:
		return "INVALID_ARGUMENT"
	case ErrorCode_NOT_FOUND:
		return "NOT_FOUND"
	case ErrorCode_ALREADY_EXISTS:
		return "ALREADY_EXISTS"
	case ErrorCode_PERMISSION_DENIED:
		return "PERMISSION_DENIED"
	case ErrorCode_INVALID_PAYLOAD:
		return "INVALID_PAYLOAD"
	case ErrorCode_MEETING_NOT_FOUND:
		return "MEETING_NOT_FOUND"
	case ErrorCode_SLOT_ALREADY_BOOKED:
		return "SLOT_ALREADY_BOOKED"
	case ErrorCode_INVALID_TIME_SLOT:
		return "INVALID_TIME_SLOT"
	case ErrorCode_INVALID_EVENT_DATE:
		return "INVALID_EVENT_DATE"
	case ErrorCode_STORE_NOT_CONFIGURED:
		return "STORE_NOT_CONFIGURED"
	case ErrorCode_DB_CONNECTION_FAILED:
		return "DB_CONNECTION_FAILED"
	case ErrorCode_DB_QUERY_FAILED:
		return "DB_QUERY_FAILED"
	case ErrorCode_SCHEMA_MISMATCH:
		return "SCHEMA_MISMATCH"
	case ErrorCode_REALTIME_FAILED:
		return "REALTIME_FAILED"
	case ErrorCode_CACHE_FAILED:
		return "CACHE_FAILED"
	case ErrorCode_EXPORT_FAILED:
		return "EXPORT_FAILED"
	default:
		return "UNKNOWN"
	}
}

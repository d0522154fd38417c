package result

type ErrorCode int

const (
	// Common Errors
	CodeOK           ErrorCode = 0
	CodeGenericError ErrorCode = 100000
	CodeUnknownTx    ErrorCode = 100001
	CodeInvalidTx    ErrorCode = 100002

	// Checkpoint / Voting power errors
	CodeNonMonotonicBlock ErrorCode = 101001
	CodeFutureBlock       ErrorCode = 101002
	CodeInvalidCategory   ErrorCode = 101003

	// Proxy errors
	CodeOutOfRange            ErrorCode = 102001
	CodeUnauthorized          ErrorCode = 102002
	CodeInsufficientPrincipal ErrorCode = 102003
	CodeProxyNotFound         ErrorCode = 102004
	CodeAlreadyExists         ErrorCode = 102005

	// Token errors
	CodeInsufficientBalance   ErrorCode = 103001
	CodeInsufficientAllowance ErrorCode = 103002
	CodeInvalidAmount         ErrorCode = 103003
)

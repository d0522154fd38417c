package types

import (
	"github.com/pkg/errors"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common/result"
)

var (
	// ErrNonMonotonicBlock is returned when a checkpoint write goes back in time.
	// It indicates a caller bug, user input can never trigger it.
	ErrNonMonotonicBlock = errors.New("NonMonotonicBlock")
	// ErrFutureBlock is returned for power queries beyond the current height.
	ErrFutureBlock = errors.New("FutureBlock")
	// ErrOutOfRange is returned for governance votes outside the axis band.
	ErrOutOfRange = errors.New("OutOfRange")
	// ErrUnauthorized is returned when the sender is not the proxy controller.
	ErrUnauthorized = errors.New("Unauthorized")
	// ErrInsufficientPrincipal is returned when unstaking more than was staked.
	ErrInsufficientPrincipal = errors.New("InsufficientPrincipal")
	// ErrInsufficientBalance is returned when a token transfer exceeds the balance.
	ErrInsufficientBalance = errors.New("InsufficientBalance")
	// ErrInsufficientAllowance is returned when transferFrom exceeds the approval.
	ErrInsufficientAllowance = errors.New("InsufficientAllowance")
	// ErrAlreadyExists is returned when the registry policy rejects a creation.
	ErrAlreadyExists = errors.New("AlreadyExists")

	ErrInvalidCategory = errors.New("InvalidCategory")
	ErrInvalidAmount   = errors.New("InvalidAmount")
	ErrProxyNotFound   = errors.New("ProxyNotFound")
	ErrUnknownTx       = errors.New("UnknownTx")
)

var errorCodes = map[error]result.ErrorCode{
	ErrNonMonotonicBlock:     result.CodeNonMonotonicBlock,
	ErrFutureBlock:           result.CodeFutureBlock,
	ErrOutOfRange:            result.CodeOutOfRange,
	ErrUnauthorized:          result.CodeUnauthorized,
	ErrInsufficientPrincipal: result.CodeInsufficientPrincipal,
	ErrInsufficientBalance:   result.CodeInsufficientBalance,
	ErrInsufficientAllowance: result.CodeInsufficientAllowance,
	ErrAlreadyExists:         result.CodeAlreadyExists,
	ErrInvalidCategory:       result.CodeInvalidCategory,
	ErrInvalidAmount:         result.CodeInvalidAmount,
	ErrProxyNotFound:         result.CodeProxyNotFound,
	ErrUnknownTx:             result.CodeUnknownTx,
}

// ErrorCodeOf maps an error (possibly wrapped) to its result code.
func ErrorCodeOf(err error) result.ErrorCode {
	if err == nil {
		return result.CodeOK
	}
	if code, ok := errorCodes[errors.Cause(err)]; ok {
		return code
	}
	return result.CodeGenericError
}

// ResultFromError converts an error into an execution result.
func ResultFromError(err error) result.Result {
	if err == nil {
		return result.OK
	}
	return result.Error("%v", err).WithErrorCode(ErrorCodeOf(err))
}

// ErrorFromResult converts a failed result back into an error wrapping the
// matching sentinel, so callers can use errors.Is on it.
func ErrorFromResult(res result.Result) error {
	if res.IsOK() {
		return nil
	}
	for sentinel, code := range errorCodes {
		if code == res.Code {
			return errors.Wrap(sentinel, res.Message)
		}
	}
	return errors.New(res.Message)
}

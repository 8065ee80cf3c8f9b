package errno

import "errors"

// Errno defines the error code logic
type Errno struct {
	Code    int
	Message string
}

func (e Errno) Error() string {
	return e.Message
}

// WithMessage 复制错误码并替换提示信息
func (e Errno) WithMessage(msg string) Errno {
	return Errno{Code: e.Code, Message: msg}
}

// Decode tries to convert an error to Errno
func Decode(err error) (int, string) {
	if err == nil {
		return OK.Code, OK.Message
	}

	var ptr *Errno
	if errors.As(err, &ptr) {
		return ptr.Code, ptr.Message
	}
	var val Errno
	if errors.As(err, &val) {
		return val.Code, val.Message
	}
	return InternalServerError.Code, err.Error()
}

// Common Errors
var (
	OK                  = Errno{Code: 0, Message: "Success"}
	InternalServerError = Errno{Code: 10001, Message: "Internal server error"}
	ErrBind             = Errno{Code: 10002, Message: "Error occurred while binding the request body to the struct"}
	ErrDatabase         = Errno{Code: 10004, Message: "Database error"}
)

// Business Errors (30000+)
var (
	ErrBroadcastRejected      = Errno{Code: 30001, Message: "Broadcast rejected by node"}
	ErrNodeUnavailable        = Errno{Code: 30002, Message: "Node unavailable"}
	ErrInvalidTxData          = Errno{Code: 30003, Message: "Invalid transaction data"}
	ErrKMSTransactionNotFound = Errno{Code: 30101, Message: "KMS transaction not found"}
)

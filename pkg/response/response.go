package response

// ErrorBody is the JSON envelope returned for failed requests.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Error(code, message string, details any) ErrorBody {
	return ErrorBody{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Notice is used for non-fatal rejections the client should show as a message
// rather than a failure, e.g. a store that is already a favorite.
type Notice struct {
	Notice  bool   `json:"notice"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewNotice(code, message string) Notice {
	return Notice{Notice: true, Code: code, Message: message}
}

package handler

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Reason  string      `json:"reason,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// NewRejectionResponse carries a machine-readable reason alongside the
// user-facing message so the UI can pick the right dialog text.
func NewRejectionResponse(message, reason string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
		Reason:  reason,
	}
}

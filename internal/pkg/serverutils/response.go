package serverutils

type WebResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func SuccessResponse(message string, data interface{}) WebResponse {
	return WebResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorBody(message string, errs interface{}) WebResponse {
	return WebResponse{
		Success: false,
		Message: message,
		Errors:  errs,
	}
}

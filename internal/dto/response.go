package dto

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func NewSuccessResponse(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

func NewMessageResponse(message string) Response {
	return Response{
		Success: true,
		Message: message,
	}
}

func NewErrorResponse(err string) Response {
	return Response{
		Success: false,
		Error:   err,
	}
}

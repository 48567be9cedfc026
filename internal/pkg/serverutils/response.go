package serverutils

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

func ErrorResponse(message string) ErrorBody {
	return ErrorBody{Error: message}
}

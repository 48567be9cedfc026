package dto

type CreateTripoTaskRequest struct {
	Prompt       string  `json:"prompt" validate:"required"`
	ModelVersion *string `json:"model_version"`
	Quality      *string `json:"quality"`
}

// RelayedResponse carries an upstream reply back to the client unchanged.
type RelayedResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

package dto

// MeResponse describes the identity resolved from the bearer token.
type MeResponse struct {
	UserID        string `json:"userID"`
	Authenticated bool   `json:"authenticated"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

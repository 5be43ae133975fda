package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the confirmation envelope returned by delete-style
// operations that have no entity to echo back.
type messageResponse struct {
	Message string `json:"message"`
}

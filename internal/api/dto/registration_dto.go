package dto

// RegisterRequest is the body POSTed to /api/auth/register. The password
// confirmation stays on the client.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// RegisterResponse holds the fields the flow reads back from the auth service.
// Any of them may be absent.
type RegisterResponse struct {
	Token   string
	UserID  string
	Message string
}

// ErrorResponse mirrors the dev server's JSON error envelope.
type ErrorResponse struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details,omitempty"`
	} `json:"error"`
}

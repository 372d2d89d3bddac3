package response

// SignupResponse echoes the identity fields the signup operation
// accepted; the confirmation code travels only by email.
type SignupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

package models

// ClientInfo is browser metadata sent with a login attempt. It is logged for audit only.
type ClientInfo struct {
	Browser    string `json:"browser"`
	ScreenSize string `json:"screenSize"`
	Language   string `json:"language"`
}

type LoginRequest struct {
	Email      string     `json:"email"`
	Password   string     `json:"password"`
	ClientInfo ClientInfo `json:"clientInfo"`
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// AdminCredentials are the bootstrap admin account details.
type AdminCredentials struct {
	Name     string
	Email    string
	Password string
}

// RegisterRequest creates an additional admin account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

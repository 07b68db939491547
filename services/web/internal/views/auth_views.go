package views

// Credentials is the login form. Never persisted.
type Credentials struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Registration is the registration sub-form. Never persisted.
type Registration struct {
	Name     string `json:"name" form:"name" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginResponse is the backend answer to POST /login/.
type LoginResponse struct {
	OK     bool   `json:"ok"`
	Token  string `json:"token"`
	Name   string `json:"name"`
	Detail Detail `json:"detail"`
}

// RegisterResponse is the backend answer to POST /register/.
type RegisterResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	Detail  Detail `json:"detail"`
}

package services

// User-facing notice texts. Fallbacks differ per endpoint.
const (
	MsgEnterCredentials   = "Enter email and password"
	MsgFillAll            = "Please fill all"
	MsgLoginFailed        = "Login failed"
	MsgRegistrationFailed = "Registration failed"
	MsgRegistered         = "Registered successfully. Please login."
	MsgBackendUnreachable = "Backend unreachable"

	MsgPredictionFailed  = "Prediction failed"
	MsgServerUnreachable = "Server unreachable"
)

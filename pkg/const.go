package pkg

const (
	HeaderTraceId   string = "X-Trace-Id"
	HeaderRequestId string = "X-Request-Id"
)

const (
	TraceId    string = "trace_id"
	RequestId  string = "request_id"
	SessionKey string = "session"
)

// Session cookie and the keys of the session record.
const (
	SessionCookie string = "cpai_sid"
	TokenKey      string = "cpai_token"
	NameKey       string = "cpai_name"
)

// Page routes.
const (
	LoginPath string = "/login"
	MainPath  string = "/"
)

// Action names used by the busy guard and metrics.
type Action string

const (
	ActionLogin    Action = "login"
	ActionRegister Action = "register"
	ActionPredict  Action = "predict"
)

package views

// ApplicantForm holds the seven prediction inputs exactly as typed.
type ApplicantForm struct {
	Name              string `form:"b_name"`
	Age               string `form:"b_age"`
	Income            string `form:"b_income"`
	LoanAmount        string `form:"b_loan"`
	CreditScore       string `form:"b_credit"`
	DebtToIncomeRatio string `form:"b_debt"`
	ExistingLoans     string `form:"b_existing"`
}

// ApplicantRecord is the payload sent for one prediction.
type ApplicantRecord struct {
	Name              string  `json:"name"`
	Age               int     `json:"age"`
	Income            float64 `json:"income"`
	LoanAmount        float64 `json:"loan_amount"`
	CreditScore       float64 `json:"credit_score"`
	DebtToIncomeRatio float64 `json:"debt_to_income_ratio"`
	ExistingLoans     int     `json:"existing_loans"`
}

// PredictionResult is the backend's risk assessment for one ApplicantRecord.
type PredictionResult struct {
	Prediction string  `json:"prediction"`
	Percentage float64 `json:"percentage"`
	Emoji      string  `json:"emoji,omitempty"`
	Name       string  `json:"name,omitempty"`
	Reason     string  `json:"reason,omitempty"`
	Action     string  `json:"action,omitempty"`
	Detail     Detail  `json:"detail,omitempty"`
}

// PopupView is the rendered result overlay.
type PopupView struct {
	Visible         bool
	Emoji           string
	Name            string
	PredictionLine  string
	ProbabilityLine string
	ReasonLine      string
	ActionLine      string
}

package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nimeshabuddhika/creditpath-web/pkg"
	"github.com/nimeshabuddhika/creditpath-web/pkg/session"
	"github.com/nimeshabuddhika/creditpath-web/services/web/internal/backend"
	"github.com/nimeshabuddhika/creditpath-web/services/web/internal/views"
	"go.uber.org/zap"
)

// Fallbacks for empty form fields.
const (
	DefaultName              = "Unknown"
	DefaultAge               = 30
	DefaultIncome            = 0.0
	DefaultLoanAmount        = 0.0
	DefaultCreditScore       = 650.0
	DefaultDebtToIncomeRatio = 20.0
	DefaultExistingLoans     = 0

	DefaultEmoji = "❗"
)

type PredictionService interface {
	// Predict gathers the record from form, submits it and renders the result.
	Predict(ctx context.Context, traceID string, sess session.Session, form views.ApplicantForm) (views.PopupView, error)
}

type PredictionServiceConfig struct {
	Logger *zap.Logger
	Client backend.Client
	Guard  pkg.BusyGuard
}

type PredictionServiceImpl struct {
	logger *zap.Logger
	client backend.Client
	guard  pkg.BusyGuard
}

func NewPredictionService(cfg PredictionServiceConfig) PredictionService {
	return &PredictionServiceImpl{
		logger: cfg.Logger,
		client: cfg.Client,
		guard:  cfg.Guard,
	}
}

func (p *PredictionServiceImpl) Predict(ctx context.Context, traceID string, sess session.Session, form views.ApplicantForm) (views.PopupView, error) {
	record, err := GatherApplicantRecord(form)
	if err != nil {
		return views.PopupView{}, err
	}

	release, err := acquire(ctx, p.guard, sess.ID, pkg.ActionPredict)
	if err != nil {
		return views.PopupView{}, err
	}
	defer release()

	result, err := p.client.Predict(backend.WithTraceID(ctx, traceID), record)
	if err != nil {
		return views.PopupView{}, backendError(err, MsgPredictionFailed, MsgServerUnreachable)
	}

	p.logger.Info("prediction received",
		zap.String(pkg.TraceId, traceID),
		zap.String("prediction", result.Prediction),
		zap.Float64("percentage", result.Percentage))
	return RenderResult(result), nil
}

// GatherApplicantRecord builds the record from the raw form. Empty fields take
// their defaults; anything else must parse, and every field that does not is
// reported in a single validation error.
func GatherApplicantRecord(form views.ApplicantForm) (views.ApplicantRecord, error) {
	var problems []string

	record := views.ApplicantRecord{
		Name:              strings.TrimSpace(form.Name),
		Age:               parseInt("age", form.Age, DefaultAge, &problems),
		Income:            parseFloat("income", form.Income, DefaultIncome, &problems),
		LoanAmount:        parseFloat("loan amount", form.LoanAmount, DefaultLoanAmount, &problems),
		CreditScore:       parseFloat("credit score", form.CreditScore, DefaultCreditScore, &problems),
		DebtToIncomeRatio: parseFloat("debt-to-income ratio", form.DebtToIncomeRatio, DefaultDebtToIncomeRatio, &problems),
		ExistingLoans:     parseInt("existing loans", form.ExistingLoans, DefaultExistingLoans, &problems),
	}
	if record.Name == "" {
		record.Name = DefaultName
	}

	if len(problems) > 0 {
		return views.ApplicantRecord{}, pkg.NewAppError(pkg.ErrValidationCode, strings.Join(problems, "; "), nil)
	}
	return record, nil
}

func parseInt(field, raw string, def int, problems *[]string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("Invalid %s: %q is not a whole number", field, raw))
		return def
	}
	return v
}

func parseFloat(field, raw string, def float64, problems *[]string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*problems = append(*problems, fmt.Sprintf("Invalid %s: %q is not a number", field, raw))
		return def
	}
	return v
}

// RenderResult turns a backend result into the visible popup.
func RenderResult(result views.PredictionResult) views.PopupView {
	popup := views.PopupView{
		Visible:         true,
		Emoji:           result.Emoji,
		Name:            result.Name,
		PredictionLine:  "Prediction: " + result.Prediction,
		ProbabilityLine: "Probability: " + strconv.FormatFloat(result.Percentage, 'f', -1, 64) + "%",
	}
	if popup.Emoji == "" {
		popup.Emoji = DefaultEmoji
	}
	if popup.Name == "" {
		popup.Name = DefaultName
	}
	if result.Reason != "" {
		popup.ReasonLine = "Main reason: " + result.Reason
	}
	if result.Action != "" {
		popup.ActionLine = "Recommended action: " + result.Action
	}
	return popup
}

// ClosePopup hides the popup. The form is left as it is.
func ClosePopup() views.PopupView {
	return views.PopupView{}
}

// ClearForm returns the form with all seven inputs emptied.
func ClearForm() views.ApplicantForm {
	return views.ApplicantForm{}
}

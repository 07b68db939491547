package services

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nimeshabuddhika/creditpath-web/pkg"
	"github.com/nimeshabuddhika/creditpath-web/pkg/session"
	"github.com/nimeshabuddhika/creditpath-web/services/web/internal/backend"
	"github.com/nimeshabuddhika/creditpath-web/services/web/internal/views"
	"go.uber.org/zap"
)

type AuthService interface {
	// Login authenticates against the backend and returns the new session.
	// The session id is rotated on success.
	Login(ctx context.Context, traceID string, sess session.Session, creds views.Credentials) (session.Session, error)
	// Register creates an account. It does not log the user in.
	Register(ctx context.Context, traceID string, sess session.Session, reg views.Registration) error
	// Logout removes the token and name of the session.
	Logout(ctx context.Context, traceID string, sess session.Session) error
}

type AuthServiceConfig struct {
	Logger *zap.Logger
	Client backend.Client
	Store  session.Store
	Guard  pkg.BusyGuard
	NewID  func() string // default uuid
}

type AuthServiceImpl struct {
	logger   *zap.Logger
	client   backend.Client
	store    session.Store
	guard    pkg.BusyGuard
	validate *validator.Validate
	newID    func() string
}

func NewAuthService(cfg AuthServiceConfig) AuthService {
	newID := cfg.NewID
	if newID == nil {
		newID = func() string { return uuid.New().String() }
	}
	return &AuthServiceImpl{
		logger:   cfg.Logger,
		client:   cfg.Client,
		store:    cfg.Store,
		guard:    cfg.Guard,
		validate: validator.New(),
		newID:    newID,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, traceID string, sess session.Session, creds views.Credentials) (session.Session, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if err := s.validate.Struct(creds); err != nil {
		return sess, pkg.NewAppError(pkg.ErrValidationCode, MsgEnterCredentials, err)
	}

	release, err := acquire(ctx, s.guard, sess.ID, pkg.ActionLogin)
	if err != nil {
		return sess, err
	}
	defer release()

	resp, err := s.client.Login(backend.WithTraceID(ctx, traceID), creds)
	if err != nil {
		return sess, backendError(err, MsgLoginFailed, MsgBackendUnreachable)
	}

	next := session.Session{ID: s.newID(), Token: resp.Token, Name: resp.Name}
	if err := s.store.Save(ctx, next); err != nil {
		return sess, pkg.NewAppError(pkg.ErrSessionStoreCode, "", err)
	}
	if sess.ID != "" {
		if err := s.store.Delete(ctx, sess.ID); err != nil {
			s.logger.Warn("failed to drop previous session", zap.String(pkg.TraceId, traceID), zap.Error(err))
		}
	}

	s.logger.Info("user logged in", zap.String(pkg.TraceId, traceID), zap.String("name", resp.Name))
	return next, nil
}

func (s *AuthServiceImpl) Register(ctx context.Context, traceID string, sess session.Session, reg views.Registration) error {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)
	if err := s.validate.Struct(reg); err != nil {
		return pkg.NewAppError(pkg.ErrValidationCode, MsgFillAll, err)
	}

	release, err := acquire(ctx, s.guard, sess.ID, pkg.ActionRegister)
	if err != nil {
		return err
	}
	defer release()

	if _, err := s.client.Register(backend.WithTraceID(ctx, traceID), reg); err != nil {
		return backendError(err, MsgRegistrationFailed, MsgBackendUnreachable)
	}
	s.logger.Info("user registered", zap.String(pkg.TraceId, traceID))
	return nil
}

func (s *AuthServiceImpl) Logout(ctx context.Context, traceID string, sess session.Session) error {
	if sess.ID == "" {
		return nil
	}
	if err := s.store.Delete(ctx, sess.ID); err != nil {
		return pkg.NewAppError(pkg.ErrSessionStoreCode, "", err)
	}
	s.logger.Info("user logged out", zap.String(pkg.TraceId, traceID))
	return nil
}

// ToggleRegistrationPanel flips the registration sub-form visibility.
func ToggleRegistrationPanel(open bool) bool {
	return !open
}

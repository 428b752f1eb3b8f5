package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"cz4r/internal/dto"
	"cz4r/internal/repository"
	pkgerrors "cz4r/pkg/errors"
	"cz4r/pkg/jwt"
)

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
)

const (
	loginFailureLocation = "/loginpage?failure=true"
	loginSuccessLocation = "/"
)

// SessionRevoker records logged-out session ids until they would have
// expired anyway.
type SessionRevoker interface {
	RevokeSession(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthService login, logout and session validation
type AuthService interface {
	// Login checks credentials. Bad credentials are not an error: the result
	// redirects back to the login page.
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResult, error)
	Logout(ctx context.Context, sess *dto.Session) error
	// ChangePassword sets a new password for a worker whose password must be
	// changed before they can log in.
	ChangePassword(ctx context.Context, workerID int64, req *dto.ChangePasswordRequest) error
	// Authenticate validates a session cookie against the current worker row.
	Authenticate(ctx context.Context, token string) (*dto.Session, error)
}

type authService struct {
	repo    *repository.Repository
	jwtMgr  *jwt.Manager
	revoker SessionRevoker
	logger  *zap.Logger
	cost    int
}

// NewAuthService creates an AuthService.
func NewAuthService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	revoker SessionRevoker,
	logger *zap.Logger,
) AuthService {
	return &authService{
		repo:    repo,
		jwtMgr:  jwtMgr,
		revoker: revoker,
		logger:  logger,
		cost:    bcrypt.DefaultCost,
	}
}

// ────── Login ──────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResult, error) {
	failure := &dto.LoginResult{Location: loginFailureLocation}

	w, err := s.repo.Worker.GetByName(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return failure, nil
		}
		return nil, storeError(s.logger, "load worker for login", err, "")
	}
	if w.Deactivated {
		s.logger.Info("login refused for deactivated worker", zap.Int64("worker_id", w.ID))
		return failure, nil
	}

	changeLocation := fmt.Sprintf("/change-pw?id=%d", w.ID)
	if w.MustChangePassword && w.PasswordHash == "" {
		return &dto.LoginResult{Location: changeLocation}, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(w.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Info("login failed", zap.Int64("worker_id", w.ID))
		return failure, nil
	}
	if w.MustChangePassword {
		return &dto.LoginResult{Location: changeLocation}, nil
	}

	token, _, err := s.jwtMgr.GenerateSessionToken(w.ID, w.PasswordHash)
	if err != nil {
		s.logger.Error("issue session token", zap.Error(err))
		return nil, err
	}

	s.logger.Info("worker logged in", zap.Int64("worker_id", w.ID))
	return &dto.LoginResult{
		Location: loginSuccessLocation,
		Session:  &dto.SessionToken{Token: token, MaxAge: s.jwtMgr.TTL()},
	}, nil
}

// ────── Logout ──────

func (s *authService) Logout(ctx context.Context, sess *dto.Session) error {
	if sess == nil || s.revoker == nil {
		return nil
	}
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.revoker.RevokeSession(ctx, sess.ID, ttl); err != nil {
		s.logger.Error("revoke session", zap.Int64("worker_id", sess.Identity.WorkerID), zap.Error(err))
		return pkgerrors.Persistence("revoke session", err)
	}
	return nil
}

// ────── Change password ──────

func (s *authService) ChangePassword(ctx context.Context, workerID int64, req *dto.ChangePasswordRequest) error {
	denied := pkgerrors.AuthorizationDenied(
		fmt.Sprintf("Worker %d cannot change their password right now", workerID))

	w, err := s.repo.Worker.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return denied
		}
		return storeError(s.logger, "load worker for password change", err, "", zap.Int64("worker_id", workerID))
	}
	if w.Deactivated || !w.MustChangePassword {
		return denied
	}
	if req.Password1 != req.Password2 {
		return ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password1), s.cost)
	if err != nil {
		s.logger.Error("hash password", zap.Error(err))
		return err
	}
	if err := s.repo.Worker.UpdatePassword(ctx, workerID, string(hash)); err != nil {
		return storeError(s.logger, "update password", err, "Worker not found", zap.Int64("worker_id", workerID))
	}

	s.logger.Info("password changed", zap.Int64("worker_id", workerID))
	return nil
}

// ────── Session ──────

func (s *authService) Authenticate(ctx context.Context, token string) (*dto.Session, error) {
	expired := pkgerrors.AuthenticationRequired("Session expired, please log in again")

	claims, err := s.jwtMgr.ParseToken(token)
	if err != nil {
		return nil, expired
	}

	if s.revoker != nil {
		revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("session revocation check failed", zap.Error(err))
		} else if revoked {
			return nil, expired
		}
	}

	w, err := s.repo.Worker.GetByID(ctx, claims.WorkerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expired
		}
		return nil, storeError(s.logger, "load session worker", err, "", zap.Int64("worker_id", claims.WorkerID))
	}
	if w.Deactivated || jwt.PasswordStamp(w.PasswordHash) != claims.PasswordStamp {
		return nil, expired
	}

	sess := &dto.Session{
		Identity:  dto.Identity{WorkerID: w.ID, Name: w.Name, Admin: w.Admin},
		ID:        claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}

	if claims.Remaining(time.Now()) < s.jwtMgr.TTL()/2 {
		renewed, newClaims, err := s.jwtMgr.Refresh(claims)
		if err != nil {
			s.logger.Warn("renew session", zap.Error(err))
		} else {
			sess.RenewedToken = renewed
			sess.ExpiresAt = newClaims.ExpiresAt.Time
		}
	}
	return sess, nil
}

package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sharath018/hotel-association-backend/config"
	"github.com/sharath018/hotel-association-backend/internal/apperror"
	"github.com/sharath018/hotel-association-backend/internal/notification"
)

// MinPasswordLength applies to every password set through this service.
const MinPasswordLength = 6

const resetTokenTTL = 15 * time.Minute

var ErrInvalidCredentials = errors.New("invalid email or password")

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*Profile, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	ParseAccessToken(ctx context.Context, token string) (Session, error)
	Me(ctx context.Context, sess Session) (*Profile, error)
	ChangeOwnPassword(ctx context.Context, sess Session, current, next string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, next string) error
	Logout(ctx context.Context, sess Session) error

	// Privileged operations. Callers must pass the authorization guard first.
	CreateProfile(ctx context.Context, input CreateProfileInput) (*Profile, error)
	AdminSetPassword(ctx context.Context, profileID, next string) error
}

type service struct {
	repo      Repository
	tokens    TokenStore
	publisher notification.Publisher
	logger    *zap.Logger

	accessSecret []byte
	accessTTL    time.Duration
	now          func() time.Time
}

func NewService(r Repository, tokens TokenStore, publisher notification.Publisher, cfg *config.Config, logger *zap.Logger) Service {
	return &service{
		repo:         r,
		tokens:       tokens,
		publisher:    publisher,
		logger:       logger,
		accessSecret: []byte(cfg.JWTAccessSecret),
		accessTTL:    time.Duration(cfg.JWTAccessTTLHours) * time.Hour,
		now:          time.Now,
	}
}

// =============================
// Register
// =============================

type RegisterInput struct {
	DisplayName string
	Email       string
	Password    string
}

// Register creates a self-registered member account. Self-registration can
// never produce a staff role.
func (s *service) Register(ctx context.Context, in RegisterInput) (*Profile, error) {
	return s.CreateProfile(ctx, CreateProfileInput{
		DisplayName:     in.DisplayName,
		Email:           in.Email,
		Password:        in.Password,
		Role:            RoleMember,
		PasswordChanged: true,
	})
}

type CreateProfileInput struct {
	DisplayName     string
	Email           string
	Password        string
	Role            Role
	PasswordChanged bool
	CreatedBy       *string
}

func (s *service) CreateProfile(ctx context.Context, in CreateProfileInput) (*Profile, error) {
	if strings.TrimSpace(in.DisplayName) == "" {
		return nil, apperror.Validation("display name is required")
	}
	if !strings.Contains(in.Email, "@") {
		return nil, apperror.Validation("a valid email is required")
	}
	if in.Role == "" {
		in.Role = RoleMember
	}
	if !in.Role.Valid() {
		return nil, apperror.Validation("unknown role %q", in.Role)
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		DisplayName:     strings.TrimSpace(in.DisplayName),
		Email:           in.Email,
		PasswordHash:    hash,
		Role:            in.Role,
		PasswordChanged: in.PasswordChanged,
		CreatedBy:       in.CreatedBy,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	notification.Emit(ctx, s.publisher, s.logger, notification.Fact{
		Kind:      notification.KindAccountCreated,
		Subject:   p.ID,
		Recipient: p.Email,
		Message:   fmt.Sprintf("Welcome %s, your console account is ready", p.DisplayName),
	})
	return p, nil
}

// =============================
// Login
// =============================

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Profile     *Profile  `json:"user"`
}

func (s *service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	p, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFoundOrForbidden) {
			return nil, fmt.Errorf("%w: %w", apperror.ErrUnauthenticated, ErrInvalidCredentials)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(in.Password)); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrUnauthenticated, ErrInvalidCredentials)
	}

	token, exp, err := s.generateAccessToken(p.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: token, ExpiresAt: exp, Profile: p}, nil
}

// The token only identifies the caller. Role is looked up on every action.
func (s *service) generateAccessToken(profileID string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.accessTTL)
	claims := jwt.RegisteredClaims{
		Subject:   profileID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.accessSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, exp, nil
}

func (s *service) ParseAccessToken(ctx context.Context, raw string) (Session, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.accessSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid || claims.Subject == "" {
		return Session{}, apperror.ErrUnauthenticated
	}

	revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return Session{}, apperror.Persistence("check session revocation", err)
	}
	if revoked {
		return Session{}, apperror.ErrUnauthenticated
	}

	sess := Session{ProfileID: claims.Subject, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}

// =============================
// Me / own password
// =============================

func (s *service) Me(ctx context.Context, sess Session) (*Profile, error) {
	if !sess.Present() {
		return nil, apperror.ErrUnauthenticated
	}
	return s.repo.FindByID(ctx, sess.ProfileID)
}

func (s *service) ChangeOwnPassword(ctx context.Context, sess Session, current, next string) error {
	p, err := s.Me(ctx, sess)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(current)); err != nil {
		return apperror.Validation("current password is incorrect")
	}
	hash, err := hashPassword(next)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, p.ID, hash, true)
}

// =============================
// Forgot / reset password
// =============================

func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	p, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// Do not reveal whether the account exists
		if errors.Is(err, apperror.ErrNotFoundOrForbidden) {
			s.logger.Info("password reset requested for unknown email")
			return nil
		}
		return err
	}

	token := generateSecureToken()
	if err := s.tokens.SaveResetToken(ctx, token, p.ID, resetTokenTTL); err != nil {
		return apperror.Persistence("save reset token", err)
	}

	notification.Emit(ctx, s.publisher, s.logger, notification.Fact{
		Kind:      notification.KindPasswordReset,
		Subject:   p.ID,
		Recipient: p.Email,
		Message:   "Use the link in this message to reset your password",
		Metadata:  map[string]string{"token": token},
	})
	return nil
}

func (s *service) ResetPassword(ctx context.Context, token, next string) error {
	hash, err := hashPassword(next)
	if err != nil {
		return err
	}
	profileID, err := s.tokens.ConsumeResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, errTokenNotFound) {
			return apperror.Validation("invalid or expired token")
		}
		return apperror.Persistence("read reset token", err)
	}
	return s.repo.UpdatePassword(ctx, profileID, hash, true)
}

// AdminSetPassword replaces a password on behalf of staff. The owner must
// choose a new one at next sign-in.
func (s *service) AdminSetPassword(ctx context.Context, profileID, next string) error {
	hash, err := hashPassword(next)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, profileID, hash, false)
}

// =============================
// Logout
// =============================

func (s *service) Logout(ctx context.Context, sess Session) error {
	if !sess.Present() {
		return apperror.ErrUnauthenticated
	}
	ttl := time.Until(sess.ExpiresAt)
	if err := s.tokens.Revoke(ctx, sess.TokenID, ttl); err != nil {
		return apperror.Persistence("revoke session", err)
	}
	return nil
}

// =============================
// Helpers
// =============================

func hashPassword(pw string) (string, error) {
	if len(pw) < MinPasswordLength {
		return "", apperror.Validation("password must be at least %d characters", MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func generateSecureToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"anoa.com/hrpayroll/internal/model"
	"anoa.com/hrpayroll/internal/repository"
	"anoa.com/hrpayroll/pkg/apperror"
	"anoa.com/hrpayroll/pkg/mailer"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type PasswordResetInput struct {
	Email string `json:"email" binding:"required,email"`
}

type PasswordResetConfirmInput struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int64       `json:"expires_in"`
	User        *model.User `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Activate(ctx context.Context, token string) error
	Login(ctx context.Context, input LoginInput) (*AuthResponse, error)
	RequestPasswordReset(ctx context.Context, input PasswordResetInput) error
	ConfirmPasswordReset(ctx context.Context, input PasswordResetConfirmInput) error
}

type AuthOpts struct {
	Secret      string
	TokenTTL    time.Duration
	OTPTTL      time.Duration
	DefaultRole string
}

type authService struct {
	users repository.UserRepository
	otps  repository.OTPRepository
	mail  mailer.Mailer
	opts  AuthOpts
}

func NewAuthService(users repository.UserRepository, otps repository.OTPRepository, mail mailer.Mailer, opts AuthOpts) AuthService {
	if opts.TokenTTL == 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.OTPTTL == 0 {
		opts.OTPTTL = 15 * time.Minute
	}
	if opts.DefaultRole == "" {
		opts.DefaultRole = "employee"
	}

	return &authService{
		users: users,
		otps:  otps,
		mail:  mail,
		opts:  opts,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if err := s.ensureUserUnique(ctx, input.Email, input.Username); err != nil {
		return nil, err
	}

	role, err := s.users.FindRoleByName(ctx, s.opts.DefaultRole)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("role %s not found", s.opts.DefaultRole)
		}
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	roleID := role.ID
	user := &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		RoleID:       &roleID,
		IsActive:     false,
	}

	profile := &model.Profile{
		BasicInformation: &model.BasicInformation{
			FirstName: input.FirstName,
			LastName:  input.LastName,
		},
	}

	if err := s.users.Create(ctx, user, profile); err != nil {
		return nil, err
	}

	if err := s.sendActivationEmail(user); err != nil {
		// Account exists; the activation mail can be re-requested.
		zap.L().Warn("failed to send activation email", zap.String("email", user.Email), zap.Error(err))
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) Activate(ctx context.Context, token string) error {
	claims, err := s.parseToken(token, "activate")
	if err != nil {
		return apperror.ErrUnauthorized
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if user.IsActive {
		return nil
	}

	user.IsActive = true
	return s.users.Update(ctx, user)
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", apperror.ErrUnauthorized)
	}

	if !user.IsActive {
		return nil, fmt.Errorf("account is not activated: %w", apperror.ErrUnauthorized)
	}

	token, expiresAt, err := s.generateToken(user.ID.String(), "access", s.opts.TokenTTL)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""

	return &AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresAt,
		User:        user,
	}, nil
}

func (s *authService) RequestPasswordReset(ctx context.Context, input PasswordResetInput) error {
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Do not reveal whether the address exists.
			return nil
		}
		return err
	}

	code, err := generateOTPCode()
	if err != nil {
		return err
	}

	otp := &model.OneTimePassword{
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: time.Now().Add(s.opts.OTPTTL),
	}
	if err := s.otps.Create(ctx, otp); err != nil {
		return err
	}

	text := fmt.Sprintf("Your password reset code is %s. It expires in %d minutes.",
		code, int(s.opts.OTPTTL.Minutes()))
	html := fmt.Sprintf("<p>Your password reset code is <strong>%s</strong>.</p><p>It expires in %d minutes.</p>",
		code, int(s.opts.OTPTTL.Minutes()))

	if err := s.mail.Send([]string{user.Email}, "Password reset code", text, html); err != nil {
		return fmt.Errorf("%w: %v", apperror.ErrExternalService, err)
	}

	return nil
}

func (s *authService) ConfirmPasswordReset(ctx context.Context, input PasswordResetConfirmInput) error {
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	otp, err := s.otps.FindActive(ctx, user.ID.String(), input.Code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if otp.Expired(time.Now()) {
		return apperror.ErrUnauthorized
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = string(hashedPassword)
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	return s.otps.MarkUsed(ctx, otp)
}

func (s *authService) sendActivationEmail(user *model.User) error {
	token, _, err := s.generateToken(user.ID.String(), "activate", 48*time.Hour)
	if err != nil {
		return err
	}

	text := fmt.Sprintf("Welcome %s! Activate your account with this token: %s", user.Username, token)
	html := fmt.Sprintf("<p>Welcome %s!</p><p>Activate your account with this token:</p><pre>%s</pre>",
		user.Username, token)

	return s.mail.Send([]string{user.Email}, "Activate your account", text, html)
}

type purposeClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

func (s *authService) generateToken(subject, purpose string, ttl time.Duration) (string, int64, error) {
	expiresAt := time.Now().Add(ttl)

	claims := purposeClaims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.opts.Secret))
	if err != nil {
		return "", 0, err
	}

	return signed, expiresAt.Unix(), nil
}

func (s *authService) parseToken(tokenString, purpose string) (*purposeClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &purposeClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.opts.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.ErrUnauthorized
	}

	claims, ok := token.Claims.(*purposeClaims)
	if !ok || claims.Purpose != purpose {
		return nil, apperror.ErrUnauthorized
	}

	return claims, nil
}

func (s *authService) ensureUserUnique(ctx context.Context, email, username string) error {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return fmt.Errorf("email %w", apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return fmt.Errorf("username %w", apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return nil
}

func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bna-assurances/campaignhub/internal/apperrors"
	"github.com/bna-assurances/campaignhub/internal/domain"
	"github.com/bna-assurances/campaignhub/internal/ports"
)

// resetTokenTTL bounds the validity of password reset tokens and SMS codes.
const resetTokenTTL = 10 * time.Minute

const revokedKeyPrefix = "auth:revoked:"

const minPasswordLength = 6

// Claims carried by access tokens. The ID field (jti) supports revocation.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Service struct {
	userRepo      ports.UserRepository
	cache         ports.Cache
	emailService  ports.EmailService
	smsService    ports.SMSService
	jwtSecret     []byte
	tokenDuration time.Duration
	baseURL       string
	log           *zap.Logger
}

func NewService(
	userRepo ports.UserRepository,
	cache ports.Cache,
	emailService ports.EmailService,
	smsService ports.SMSService,
	jwtSecret string,
	tokenDuration time.Duration,
	baseURL string,
	log *zap.Logger,
) ports.AuthService {
	return &Service{
		userRepo:      userRepo,
		cache:         cache,
		emailService:  emailService,
		smsService:    smsService,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: tokenDuration,
		baseURL:       baseURL,
		log:           log,
	}
}

func (s *Service) Register(ctx context.Context, user *domain.User) error {
	if user.Email == "" || user.Password == "" {
		return apperrors.NewValidation("email and password are required")
	}

	existing, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperrors.ErrEmailTaken
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPwd)

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = domain.UserRoleClient
	}
	user.InscriptionDate = time.Now()
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)
	return nil
}

func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Logout marks the token's jti as revoked until the token would expire
// anyway. An unparseable or already-expired token is a no-op.
func (s *Service) Logout(ctx context.Context, tokenStr string) error {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, revokedKeyPrefix+claims.ID, "1", ttl)
}

func (s *Service) ValidateToken(ctx context.Context, tokenStr string) (*domain.User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.ID != "" {
		if revoked, _ := s.cache.Get(ctx, revokedKeyPrefix+claims.ID); revoked != "" {
			return nil, errors.New("token revoked")
		}
	}

	user, err := s.userRepo.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	return user, nil
}

// ForgotPassword starts a reset flow. A missing account is reported as
// success so the endpoint cannot be used to probe for registered addresses.
func (s *Service) ForgotPassword(ctx context.Context, method ports.ResetMethod, identifier string) error {
	switch method {
	case ports.ResetByEmail:
		return s.forgotByEmail(ctx, identifier)
	case ports.ResetByPhone:
		return s.forgotByPhone(ctx, identifier)
	default:
		return apperrors.NewValidation("unknown reset method: %s", method)
	}
}

func (s *Service) forgotByEmail(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		s.log.Info("Password reset requested for unknown email")
		return nil
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return err
	}
	token := hex.EncodeToString(raw)

	if err := s.storeResetToken(ctx, user.ID, token); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token)
	if err := s.emailService.SendPasswordReset(ctx, user.Email, user.FirstName, resetURL); err != nil {
		s.log.Error("Failed to send password reset email", zap.String("user_id", user.ID), zap.Error(err))
		return err
	}

	s.log.Info("Password reset email sent", zap.String("user_id", user.ID))
	return nil
}

func (s *Service) forgotByPhone(ctx context.Context, phone string) error {
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if user == nil {
		s.log.Info("Password reset requested for unknown phone")
		return nil
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	if err := s.storeResetToken(ctx, user.ID, code); err != nil {
		return err
	}

	body := fmt.Sprintf("BNA Assurances: votre code de réinitialisation est %s. Il expire dans 10 minutes.", code)
	if err := s.smsService.Send(ctx, user.Phone, body); err != nil {
		s.log.Error("Failed to send password reset SMS", zap.String("user_id", user.ID), zap.Error(err))
		return err
	}

	s.log.Info("Password reset code sent", zap.String("user_id", user.ID))
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return apperrors.NewValidation("password must be at least %d characters", minPasswordLength)
	}

	user, err := s.userRepo.FindByResetToken(ctx, hashToken(token))
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NewValidation("reset token is invalid or expired")
	}

	return s.applyNewPassword(ctx, user.ID, newPassword)
}

func (s *Service) ResetPasswordWithCode(ctx context.Context, phone, code, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return apperrors.NewValidation("password must be at least %d characters", minPasswordLength)
	}

	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if user == nil || user.PasswordResetToken != hashToken(code) {
		return apperrors.NewValidation("reset code is invalid or expired")
	}
	if user.PasswordResetExpires == nil || user.PasswordResetExpires.Before(time.Now()) {
		return apperrors.NewValidation("reset code is invalid or expired")
	}

	return s.applyNewPassword(ctx, user.ID, newPassword)
}

func (s *Service) applyNewPassword(ctx context.Context, userID, newPassword string) error {
	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	updated, err := s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{
		"password":               string(hashedPwd),
		"password_reset_token":   "",
		"password_reset_expires": nil,
		"updated_at":             time.Now(),
	})
	if err != nil {
		return err
	}
	if !updated {
		return apperrors.NewNotFound("user", userID)
	}

	s.log.Info("Password reset completed", zap.String("user_id", userID))
	return nil
}

// storeResetToken persists the hash of a reset secret. Only the hash ever
// touches the database, the raw value goes out by email or SMS.
func (s *Service) storeResetToken(ctx context.Context, userID, secret string) error {
	expires := time.Now().Add(resetTokenTTL)
	updated, err := s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{
		"password_reset_token":   hashToken(secret),
		"password_reset_expires": expires,
	})
	if err != nil {
		return err
	}
	if !updated {
		return apperrors.NewNotFound("user", userID)
	}
	return nil
}

func (s *Service) generateAccessToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// generateCode returns a random 6-digit SMS verification code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"agentcraft-be/internal/dto"
	"agentcraft-be/internal/entity"
	"agentcraft-be/internal/pkg/apperror"
	"agentcraft-be/internal/repository/memory"
	"agentcraft-be/internal/repository/specification"
	"agentcraft-be/internal/repository/unitofwork"

	"agentcraft-be/pkg/events"
	pktNats "agentcraft-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const maxLoginFailures = 5

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error)
	ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
	Logout(ctx context.Context, refreshToken string) error
}

// WelcomeEmailJob is the payload published to the welcome-email topic.
type WelcomeEmailJob struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
}

type authService struct {
	uowFactory        unitofwork.RepositoryFactory
	loginAttempts     *memory.LoginAttemptRepository
	eventPublisher    *pktNats.Publisher
	jobPublisher      message.Publisher
	welcomeEmailTopic string
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	loginAttempts *memory.LoginAttemptRepository,
	eventPublisher *pktNats.Publisher,
	jobPublisher message.Publisher,
	welcomeEmailTopic string,
) IAuthService {
	return &authService{
		uowFactory:        uowFactory,
		loginAttempts:     loginAttempts,
		eventPublisher:    eventPublisher,
		jobPublisher:      jobPublisher,
		welcomeEmailTopic: welcomeEmailTopic,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, apperror.Wrap(apperror.KindStoreUnavailable, "could not check existing account", err)
	}
	if existing != nil {
		return nil, apperror.InvalidInput("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: &hashStr,
		Role:         entity.UserRoleUser,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Wrap(apperror.KindStoreUnavailable, "could not create account", err)
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, apperror.Wrap(apperror.KindStoreUnavailable, "could not create account", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Wrap(apperror.KindStoreUnavailable, "could not create account", err)
	}

	// Queue the welcome email, failures only get logged.
	if s.jobPublisher != nil {
		payload, _ := json.Marshal(WelcomeEmailJob{Email: user.Email, FirstName: user.FirstName})
		msg := message.NewMessage(watermill.NewUUID(), payload)
		if err := s.jobPublisher.Publish(s.welcomeEmailTopic, msg); err != nil {
			fmt.Printf("[WARN] Failed to queue welcome email for %s: %v\n", user.Email, err)
		}
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewUserRegisteredEvent(user.Id.String(), user.Email)); err != nil {
			fmt.Printf("[WARN] Failed to publish USER_REGISTERED event: %v\n", err)
		}
	}

	accessToken, err := signAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: accessToken,
		User:        userToProfile(user),
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error) {
	if s.loginAttempts.Failures(req.Email) >= maxLoginFailures {
		return nil, apperror.Forbidden("too many failed attempts, try again later")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, apperror.InvalidInput("invalid credentials")
	}
	if user == nil {
		s.loginAttempts.RecordFailure(req.Email)
		return nil, apperror.InvalidInput("invalid credentials")
	}

	if user.PasswordHash == nil {
		return nil, apperror.InvalidInput("user registered via OAuth")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		s.loginAttempts.RecordFailure(req.Email)
		return nil, apperror.InvalidInput("invalid credentials")
	}

	s.loginAttempts.Reset(req.Email)

	accessToken, err := signAccessToken(user)
	if err != nil {
		return nil, err
	}

	var rawRefreshToken string

	// Only mint a refresh token when "Remember Me" is checked.
	if req.RememberMe {
		rawRefreshToken = uuid.New().String()

		refreshTokenEntity := &entity.UserRefreshToken{
			Id:        uuid.New(),
			UserId:    user.Id,
			TokenHash: hashToken(rawRefreshToken),
			ExpiresAt: time.Now().Add(time.Hour * 24 * 30),
			Revoked:   false,
			CreatedAt: time.Now(),
			IpAddress: ipAddress,
			UserAgent: userAgent,
		}

		if err := uow.UserRepository().CreateRefreshToken(ctx, refreshTokenEntity); err != nil {
			return nil, fmt.Errorf("failed to create session: %v", err)
		}
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewUserLoginEvent(user.Id.String(), user.Email)); err != nil {
			fmt.Printf("[WARN] Failed to publish USER_LOGIN event: %v\n", err)
		}
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: rawRefreshToken,
		User:         userToProfile(user),
	}, nil
}

func (s *authService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tokenEntity, err := uow.UserRepository().FindRefreshToken(ctx, specification.ByTokenHash{Hash: hashToken(req.RefreshToken)})
	if err != nil || tokenEntity == nil {
		return nil, apperror.InvalidInput("invalid refresh token")
	}
	if tokenEntity.Revoked {
		return nil, apperror.InvalidInput("refresh token revoked")
	}
	if time.Now().After(tokenEntity.ExpiresAt) {
		return nil, apperror.InvalidInput("refresh token expired")
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: tokenEntity.UserId})
	if err != nil || user == nil {
		return nil, apperror.InvalidInput("invalid refresh token")
	}

	accessToken, err := signAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.RefreshTokenResponse{AccessToken: accessToken}, nil
}

func (s *authService) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil || user == nil {
		// Don't leak whether the account exists.
		return nil
	}

	selector, err := randomHex(16)
	if err != nil {
		return err
	}
	verifier, err := randomHex(32)
	if err != nil {
		return err
	}

	verifierHash, err := bcrypt.GenerateFromPassword([]byte(verifier), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	resetToken := &entity.PasswordResetToken{
		Id:           uuid.New(),
		UserId:       user.Id,
		Selector:     selector,
		VerifierHash: string(verifierHash),
		ExpiresAt:    time.Now().Add(1 * time.Hour),
		Used:         false,
		CreatedAt:    time.Now(),
	}

	if err := uow.UserRepository().CreatePasswordResetToken(ctx, resetToken); err != nil {
		return err
	}

	// The user receives "selector:verifier", only the selector is stored
	// in clear.
	token := selector + ":" + verifier
	if s.jobPublisher != nil {
		payload, _ := json.Marshal(ResetEmailJob{Email: user.Email, Token: token})
		msg := message.NewMessage(watermill.NewUUID(), payload)
		if err := s.jobPublisher.Publish(resetEmailTopic, msg); err != nil {
			fmt.Printf("[WARN] Failed to queue reset email for %s: %v\n", user.Email, err)
		}
	}

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	selector, verifier, ok := splitResetToken(req.Token)
	if !ok {
		return apperror.InvalidInput("invalid or expired token")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	tokenEntity, err := uow.UserRepository().FindPasswordResetToken(ctx, specification.BySelector{Selector: selector})
	if err != nil || tokenEntity == nil {
		return apperror.InvalidInput("invalid or expired token")
	}

	if tokenEntity.Used {
		return apperror.InvalidInput("this password reset link has already been used")
	}

	if time.Now().After(tokenEntity.ExpiresAt) {
		return apperror.InvalidInput("this password reset link has expired")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(tokenEntity.VerifierHash), []byte(verifier)); err != nil {
		return apperror.InvalidInput("invalid or expired token")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().UpdatePassword(ctx, tokenEntity.UserId, string(hash)); err != nil {
		return err
	}

	if err := uow.UserRepository().MarkTokenUsed(ctx, tokenEntity.Id); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.UserRepository().RevokeRefreshToken(ctx, hashToken(refreshToken))
}

// Helpers shared with the OAuth service.

func signAccessToken(user *entity.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"role":    user.Role,
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_secret"
	}
	return token.SignedString([]byte(secret))
}

func hashToken(raw string) string {
	hasher := sha256.New()
	hasher.Write([]byte(raw))
	return hex.EncodeToString(hasher.Sum(nil))
}

func randomHex(nBytes int) (string, error) {
	buf := make([]byte, nBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func splitResetToken(token string) (selector, verifier string, ok bool) {
	parts := strings.SplitN(token, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func userToProfile(user *entity.User) *dto.UserProfileResponse {
	res := &dto.UserProfileResponse{
		Id:        user.Id,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
	if user.BusinessName != nil {
		res.BusinessName = *user.BusinessName
	}
	if user.Industry != nil {
		res.Industry = *user.Industry
	}
	if user.Goal != nil {
		res.Goal = *user.Goal
	}
	if user.ProfileImageURL != nil {
		res.ProfileImageURL = *user.ProfileImageURL
	}
	return res
}

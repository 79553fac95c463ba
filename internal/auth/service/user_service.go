package service

import (
	"context"
	"log"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/studymodules/auth-service/internal/auth/domain"
	"github.com/studymodules/auth-service/internal/auth/dto"
	autherror "github.com/studymodules/auth-service/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

const passwordSpecials = "!@#$%^&*"

type UserService struct {
	repo         domain.UserRepository
	blacklist    domain.TokenBlacklist
	tokenService TokenGenerator
}

func NewUserService(repo domain.UserRepository, blacklist domain.TokenBlacklist, tokenService TokenGenerator) *UserService {
	return &UserService{
		repo:         repo,
		blacklist:    blacklist,
		tokenService: tokenService,
	}
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	if input.Email == "" || input.Password == "" {
		return nil, autherror.ErrInvalidInput
	}

	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	existingUser, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	accessToken, _, err := s.tokenService.Generate(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken: accessToken,
		User:        dto.NewUserOutput(user),
	}, nil
}

func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	// Unknown email and wrong password fail identically so responses never
	// reveal whether an account exists.
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, autherror.ErrInvalidCredentials
	}

	accessToken, _, err := s.tokenService.Generate(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken: accessToken,
		User:        dto.NewUserOutput(user),
	}, nil
}

// Logout revokes the given token until its own expiry. It is best-effort: a
// token whose claims cannot be read is still revoked (with the maximum TTL as
// its expiry), and a failed store write is logged, never surfaced.
func (s *UserService) Logout(ctx context.Context, tokenString string) {
	expiresAt, err := s.tokenService.ExtractExpiry(tokenString)
	if err != nil {
		expiresAt = time.Now().Add(s.tokenService.GetAccessTokenExpiry())
	}

	if err := s.blacklist.Add(ctx, tokenString, expiresAt); err != nil {
		log.Printf("warn: failed to blacklist token on logout: %v", err)
	}
}

func (s *UserService) IsTokenBlacklisted(ctx context.Context, tokenString string) (bool, error) {
	return s.blacklist.IsBlacklisted(ctx, tokenString)
}

func (s *UserService) ValidateUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) VerifyToken(tokenString string) (*JWTCustomClaims, error) {
	return s.tokenService.VerifyAccessToken(tokenString)
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return autherror.ErrWeakPassword
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		}
	}

	if !hasLower || !hasUpper || !hasDigit || !hasSpecial {
		return autherror.ErrWeakPassword
	}

	return nil
}

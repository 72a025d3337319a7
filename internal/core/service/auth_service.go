package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bagibarang-its/inventory-api/internal/core/domain"
	"github.com/bagibarang-its/inventory-api/internal/core/ports"
)

// BcryptCost is the work factor for stored password hashes.
const BcryptCost = 10

// DefaultEmailDomain is the institutional suffix every organization email must carry.
const DefaultEmailDomain = "@student.its.ac.id"

// AuthService implements registration, login and token-based authentication.
type AuthService struct {
	repo        ports.OrganizationRepository
	tokens      ports.TokenService
	emailDomain string
	log         zerolog.Logger
}

func NewAuthService(repo ports.OrganizationRepository, tokens ports.TokenService, emailDomain string, log zerolog.Logger) *AuthService {
	if emailDomain == "" {
		emailDomain = DefaultEmailDomain
	}
	return &AuthService{
		repo:        repo,
		tokens:      tokens,
		emailDomain: strings.ToLower(emailDomain),
		log:         log,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if in.OrganizationName == "" || in.AccountName == "" || in.Email == "" || in.Password == "" {
		return nil, domain.Invalid("all fields are required")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !strings.HasSuffix(email, s.emailDomain) {
		return nil, domain.Invalid(fmt.Sprintf("email must use the %s domain", s.emailDomain))
	}

	exists, err := s.repo.ExistsByAccountOrEmail(ctx, in.AccountName, email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if exists {
		return nil, domain.ErrOrganizationExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, domain.Invalid("password must be at most 72 bytes")
	}
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Organization{
		Name:         in.OrganizationName,
		AccountName:  in.AccountName,
		Email:        email,
		PasswordHash: string(hash),
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrOrganizationExists) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	token, err := s.tokens.Issue(created.ID)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("organization_id", created.ID).Str("account", created.AccountName).Msg("organization registered")

	return &ports.AuthResult{Token: token, Organization: created.Sanitized()}, nil
}

func (s *AuthService) Login(ctx context.Context, accountName, password string) (*ports.AuthResult, error) {
	if accountName == "" || password == "" {
		return nil, domain.Invalid("account name and password are required")
	}

	org, err := s.repo.FindByAccountName(ctx, accountName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(org.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrWrongPassword
	}

	token, err := s.tokens.Issue(org.ID)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	return &ports.AuthResult{Token: token, Organization: org.Sanitized()}, nil
}

// Authenticate verifies the token and loads the organization it names.
// Every failure is reported as an authentication error.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Organization, error) {
	if token == "" {
		return nil, domain.ErrMissingToken
	}

	orgID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	org, err := s.repo.FindByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnknownActor
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	return org.Sanitized(), nil
}

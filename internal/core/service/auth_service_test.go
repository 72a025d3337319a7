package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bagibarang-its/inventory-api/internal/core/domain"
	"github.com/bagibarang-its/inventory-api/internal/core/ports"
)

type stubOrgRepo struct {
	orgs      map[string]*domain.Organization
	seq       int
	createErr error
}

func newStubOrgRepo() *stubOrgRepo {
	return &stubOrgRepo{orgs: make(map[string]*domain.Organization)}
}

func cloneOrg(o *domain.Organization) *domain.Organization {
	clone := *o
	return &clone
}

func (r *stubOrgRepo) Create(_ context.Context, org *domain.Organization) (*domain.Organization, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, o := range r.orgs {
		if o.AccountName == org.AccountName || o.Email == org.Email {
			return nil, domain.ErrOrganizationExists
		}
	}
	r.seq++
	stored := cloneOrg(org)
	stored.ID = fmt.Sprintf("org-%d", r.seq)
	r.orgs[stored.ID] = stored
	return cloneOrg(stored), nil
}

func (r *stubOrgRepo) ExistsByAccountOrEmail(_ context.Context, accountName, email string) (bool, error) {
	for _, o := range r.orgs {
		if o.AccountName == accountName || o.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubOrgRepo) FindByAccountName(_ context.Context, accountName string) (*domain.Organization, error) {
	for _, o := range r.orgs {
		if o.AccountName == accountName {
			return cloneOrg(o), nil
		}
	}
	return nil, domain.ErrOrganizationNotFound
}

func (r *stubOrgRepo) FindByID(_ context.Context, id string) (*domain.Organization, error) {
	o, ok := r.orgs[id]
	if !ok {
		return nil, domain.ErrOrganizationNotFound
	}
	clone := cloneOrg(o)
	clone.PasswordHash = ""
	return clone, nil
}

func newTestAuthService(t *testing.T, repo *stubOrgRepo) (*AuthService, *TokenService) {
	t.Helper()
	tokens, err := NewTokenService("secret", time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	return NewAuthService(repo, tokens, "", zerolog.Nop()), tokens
}

func validRegistration() ports.RegisterInput {
	return ports.RegisterInput{
		OrganizationName: "CSS ITS",
		AccountName:      "css_its",
		Email:            "a@student.its.ac.id",
		Password:         "p1",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubOrgRepo()
	svc, tokens := newTestAuthService(t, repo)

	in := validRegistration()
	in.Email = "A@Student.ITS.ac.id"
	res, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	org := res.Organization
	if org.PasswordHash != "" {
		t.Fatalf("returned profile must not carry the password hash")
	}
	if org.Email != "a@student.its.ac.id" {
		t.Fatalf("expected lowercased email, got %s", org.Email)
	}
	if org.Status != domain.StatusActive {
		t.Fatalf("expected status active, got %s", org.Status)
	}

	stored := repo.orgs[org.ID]
	if stored.PasswordHash == "p1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("p1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if cost, _ := bcrypt.Cost([]byte(stored.PasswordHash)); cost != BcryptCost {
		t.Fatalf("expected bcrypt cost %d, got %d", BcryptCost, cost)
	}

	orgID, err := tokens.Verify(res.Token)
	if err != nil || orgID != org.ID {
		t.Fatalf("token does not identify the new organization: %q %v", orgID, err)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	cases := map[string]func(*ports.RegisterInput){
		"organization name": func(in *ports.RegisterInput) { in.OrganizationName = "" },
		"account name":      func(in *ports.RegisterInput) { in.AccountName = "" },
		"email":             func(in *ports.RegisterInput) { in.Email = "" },
		"password":          func(in *ports.RegisterInput) { in.Password = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			repo := newStubOrgRepo()
			svc, _ := newTestAuthService(t, repo)
			in := validRegistration()
			mutate(&in)

			_, err := svc.Register(context.Background(), in)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if len(repo.orgs) != 0 {
				t.Fatalf("no organization should be stored")
			}
		})
	}
}

func TestAuthService_Register_EmailDomain(t *testing.T) {
	for _, email := range []string{"a@gmail.com", "a@its.ac.id", "a@student.its.ac.id.evil.com"} {
		repo := newStubOrgRepo()
		svc, _ := newTestAuthService(t, repo)
		in := validRegistration()
		in.Email = email

		_, err := svc.Register(context.Background(), in)
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", email, err)
		}
		if len(repo.orgs) != 0 {
			t.Fatalf("%s: no organization should be stored", email)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubOrgRepo()
	svc, _ := newTestAuthService(t, repo)

	if _, err := svc.Register(context.Background(), validRegistration()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	sameAccount := validRegistration()
	sameAccount.Email = "other@student.its.ac.id"
	sameEmail := validRegistration()
	sameEmail.AccountName = "other"
	sameEmail.Email = "A@student.its.ac.id"

	for _, in := range []ports.RegisterInput{sameAccount, sameEmail} {
		_, err := svc.Register(context.Background(), in)
		if err != domain.ErrOrganizationExists {
			t.Fatalf("expected ErrOrganizationExists, got %v", err)
		}
		if err.Error() != "account or email already registered" {
			t.Fatalf("unexpected message: %s", err.Error())
		}
	}
	if len(repo.orgs) != 1 {
		t.Fatalf("expected 1 organization, got %d", len(repo.orgs))
	}
}

func TestAuthService_Register_StoreRejectsDuplicate(t *testing.T) {
	repo := newStubOrgRepo()
	repo.createErr = domain.ErrOrganizationExists
	svc, _ := newTestAuthService(t, repo)

	_, err := svc.Register(context.Background(), validRegistration())
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected a validation error for a lost insert race, got %v", err)
	}
}

func TestAuthService_Register_StoreFailure(t *testing.T) {
	repo := newStubOrgRepo()
	repo.createErr = errors.New("connection reset")
	svc, _ := newTestAuthService(t, repo)

	_, err := svc.Register(context.Background(), validRegistration())
	if err == nil || errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected an internal error, got %v", err)
	}
}

func TestAuthService_Login_RoundTrip(t *testing.T) {
	repo := newStubOrgRepo()
	svc, _ := newTestAuthService(t, repo)

	reg, err := svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := svc.Login(context.Background(), "css_its", "p1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token")
	}
	if res.Organization.PasswordHash != "" {
		t.Fatalf("login must not return the password hash")
	}

	me, err := svc.Authenticate(context.Background(), res.Token)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if me.ID != reg.Organization.ID || me.Name != "CSS ITS" || me.AccountName != "css_its" || me.Email != "a@student.its.ac.id" {
		t.Fatalf("unexpected profile: %+v", me)
	}
}

func TestAuthService_Login_Failures(t *testing.T) {
	repo := newStubOrgRepo()
	svc, _ := newTestAuthService(t, repo)
	_, _ = svc.Register(context.Background(), validRegistration())

	if _, err := svc.Login(context.Background(), "", "p1"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "ghost", "p1"); err != domain.ErrAccountNotFound {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "css_its", "bad"); err != domain.ErrWrongPassword {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
}

func TestAuthService_Authenticate_Failures(t *testing.T) {
	repo := newStubOrgRepo()
	svc, tokens := newTestAuthService(t, repo)

	if _, err := svc.Authenticate(context.Background(), ""); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for empty token, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "garbage"); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	orphan, _ := tokens.Issue("org-404")
	if _, err := svc.Authenticate(context.Background(), orphan); err != domain.ErrUnknownActor {
		t.Fatalf("expected ErrUnknownActor, got %v", err)
	}
}

package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"log"
	"strings"

	"fixify/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	users    UserRepository
	catalog  ServiceCatalog
	tokens   TokenIssuer
	adminKey string
}

// NewService builds the account service. An empty adminKey leaves admin
// registration open.
func NewService(users UserRepository, catalog ServiceCatalog, tokens TokenIssuer, adminKey string) *Service {
	return &Service{
		users:    users,
		catalog:  catalog,
		tokens:   tokens,
		adminKey: adminKey,
	}
}

func (s *Service) RegisterClient(ctx context.Context, req RegisterClientRequest) (*domain.User, error) {
	u := &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
		Role:         domain.RoleClient,
		Availability: true,
	}
	if err := requireContact(u); err != nil {
		return nil, err
	}
	if err := s.create(ctx, u, req.Password); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) RegisterProvider(ctx context.Context, req RegisterProviderRequest) (*domain.User, error) {
	services, err := s.canonicalServices(ctx, req.ServicesOffered)
	if err != nil {
		return nil, err
	}

	availability := true
	if req.Availability != nil {
		availability = *req.Availability
	}

	u := &domain.User{
		Name:               strings.TrimSpace(req.Name),
		Email:              req.Email,
		Phone:              strings.TrimSpace(req.Phone),
		Address:            strings.TrimSpace(req.Address),
		Role:               domain.RoleProvider,
		VerificationStatus: domain.VerificationPending,
		ServicesOffered:    services,
		Experience:         req.Experience,
		Documents:          req.Documents,
		Availability:       availability,
	}
	if err := requireContact(u); err != nil {
		return nil, err
	}
	if err := s.create(ctx, u, req.Password); err != nil {
		return nil, err
	}
	return u, nil
}

// RegisterAdmin checks key against the configured admin key when one is set.
func (s *Service) RegisterAdmin(ctx context.Context, req RegisterAdminRequest, key string) (*domain.User, error) {
	if s.adminKey != "" && subtle.ConstantTimeCompare([]byte(key), []byte(s.adminKey)) != 1 {
		return nil, ErrAdminKey
	}

	u := &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
		Role:         domain.RoleAdmin,
		Availability: true,
	}
	if err := s.create(ctx, u, req.Password); err != nil {
		return nil, err
	}
	log.Printf("admin registered: user_id=%d email=%s", u.ID, u.Email)
	return u, nil
}

// requireContact checks the trimmed fields every client and provider needs.
func requireContact(u *domain.User) error {
	if u.Name == "" || u.Phone == "" || u.Address == "" {
		return ErrMissingContact
	}
	return nil
}

func (s *Service) create(ctx context.Context, u *domain.User, password string) error {
	if err := s.validateEmailUnique(ctx, u.Email); err != nil {
		return err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// canonicalServices matches requested names against the catalog ignoring
// case and returns the catalog spelling, without duplicates.
func (s *Service) canonicalServices(ctx context.Context, requested []string) ([]string, error) {
	if len(requested) == 0 {
		return nil, ErrNoServices
	}

	catalog, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	byLower := make(map[string]string, len(catalog))
	for _, svc := range catalog {
		byLower[strings.ToLower(svc.Name)] = svc.Name
	}

	seen := make(map[string]bool, len(requested))
	var out, unknown []string
	for _, name := range requested {
		canonical, ok := byLower[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		if !seen[canonical] {
			seen[canonical] = true
			out = append(out, canonical)
		}
	}
	if len(unknown) > 0 {
		return nil, unknownServices(unknown)
	}
	return out, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: u, Token: token}, nil
}

// UpdateProfile applies req to the caller's own record.
func (s *Service) UpdateProfile(ctx context.Context, caller *domain.User, req UpdateProfileRequest) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(req.Name); v != "" {
		u.Name = v
	}
	if v := strings.TrimSpace(req.Email); v != "" && !strings.EqualFold(v, u.Email) {
		if err := s.validateEmailUnique(ctx, v); err != nil {
			return nil, err
		}
		u.Email = v
	}
	if v := strings.TrimSpace(req.Phone); v != "" {
		u.Phone = v
	}
	if v := strings.TrimSpace(req.Address); v != "" {
		u.Address = v
	}
	if req.Password != "" {
		hash, err := hashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if u.Role == domain.RoleProvider {
		if req.Experience != nil {
			u.Experience = *req.Experience
		}
		if req.Availability != nil {
			u.Availability = *req.Availability
		}
	}

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) validateEmailUnique(ctx context.Context, email string) error {
	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrEmailAlreadyExists
	case errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		return err
	}
}

func hashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

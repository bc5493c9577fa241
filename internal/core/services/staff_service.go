package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/ticket_gate/internal/core/domain"
	"github.com/srgjo27/ticket_gate/internal/core/ports"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string        `json:"message"`
	Token   string        `json:"token"`
	Staff   domain.Claims `json:"staff"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateStaffRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type StaffService struct {
	staffRepo ports.StaffRepository
	hasher    ports.PasswordHasher
	tokens    ports.TokenIssuer
}

func NewStaffService(staffRepo ports.StaffRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer) *StaffService {
	return &StaffService{
		staffRepo: staffRepo,
		hasher:    hasher,
		tokens:    tokens,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func claimsFor(staff *domain.Staff) domain.Claims {
	return domain.Claims{
		ID:    staff.ID.String(),
		Email: staff.Email,
		Role:  staff.Role,
	}
}

func (s *StaffService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, domain.ErrCredentialsMissing
	}

	staff, err := s.staffRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrStaffNotFound) {
			return nil, domain.ErrUnknownStaff
		}
		slog.Error("s.staffRepo.GetByEmail()", "email", email, "error", err)
		return nil, domain.NewInternalError("failed to load staff", err)
	}

	if err := s.hasher.Compare(staff.PasswordHash, req.Password); err != nil {
		slog.Info("staff login rejected", "email", email)
		return nil, domain.ErrInvalidCredentials
	}

	claims := claimsFor(staff)
	token, err := s.tokens.Issue(claims)
	if err != nil {
		slog.Error("s.tokens.Issue()", "email", email, "error", err)
		return nil, domain.NewInternalError("failed to sign token", err)
	}

	return &LoginResponse{
		Message: "Login successful",
		Token:   token,
		Staff:   claims,
	}, nil
}

func (s *StaffService) Register(ctx context.Context, req RegisterRequest) (*domain.Staff, error) {
	return s.create(ctx, req, domain.RoleStaff)
}

func (s *StaffService) create(ctx context.Context, req RegisterRequest, role domain.Role) (*domain.Staff, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, domain.NewValidationError("Name, email and password required")
	}

	_, err := s.staffRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.ErrStaffExists
	case !errors.Is(err, domain.ErrStaffNotFound):
		slog.Error("s.staffRepo.GetByEmail()", "email", email, "error", err)
		return nil, domain.NewInternalError("failed to load staff", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, domain.NewInternalError("failed to hash password", err)
	}

	staff := &domain.Staff{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.staffRepo.Create(ctx, staff); err != nil {
		if errors.Is(err, domain.ErrStaffExists) {
			return nil, err
		}
		slog.Error("s.staffRepo.Create()", "email", email, "error", err)
		return nil, domain.NewInternalError("failed to save staff", err)
	}

	slog.Info("staff registered", "staff_id", staff.ID, "role", role)
	return staff, nil
}

// EnsureAdmin seeds the bootstrap admin account when its email is not taken yet.
func (s *StaffService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	_, err := s.create(ctx, RegisterRequest{Name: name, Email: email, Password: password}, domain.RoleAdmin)
	if errors.Is(err, domain.ErrStaffExists) {
		return nil
	}
	return err
}

func (s *StaffService) List(ctx context.Context) ([]domain.Staff, error) {
	staff, err := s.staffRepo.ListByRole(ctx, domain.RoleStaff)
	if err != nil {
		slog.Error("s.staffRepo.ListByRole()", "error", err)
		return nil, domain.NewInternalError("failed to list staff", err)
	}
	if staff == nil {
		staff = []domain.Staff{}
	}
	return staff, nil
}

func (s *StaffService) Update(ctx context.Context, rawID string, req UpdateStaffRequest) (*domain.Staff, error) {
	staff, err := s.lookup(ctx, rawID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		staff.Name = name
	}
	if email := normalizeEmail(req.Email); email != "" && email != staff.Email {
		if _, err := s.staffRepo.GetByEmail(ctx, email); err == nil {
			return nil, domain.ErrStaffExists
		} else if !errors.Is(err, domain.ErrStaffNotFound) {
			return nil, domain.NewInternalError("failed to load staff", err)
		}
		staff.Email = email
	}
	if req.Password != "" {
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			return nil, domain.NewInternalError("failed to hash password", err)
		}
		staff.PasswordHash = hash
	}

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		if errors.Is(err, domain.ErrStaffNotFound) || errors.Is(err, domain.ErrStaffExists) {
			return nil, err
		}
		slog.Error("s.staffRepo.Update()", "staff_id", staff.ID, "error", err)
		return nil, domain.NewInternalError("failed to update staff", err)
	}

	return staff, nil
}

func (s *StaffService) Delete(ctx context.Context, rawID string) error {
	staff, err := s.lookup(ctx, rawID)
	if err != nil {
		return err
	}

	if err := s.staffRepo.Delete(ctx, staff.ID); err != nil {
		if errors.Is(err, domain.ErrStaffNotFound) {
			return err
		}
		slog.Error("s.staffRepo.Delete()", "staff_id", staff.ID, "error", err)
		return domain.NewInternalError("failed to delete staff", err)
	}

	slog.Info("staff deleted", "staff_id", staff.ID)
	return nil
}

func (s *StaffService) lookup(ctx context.Context, rawID string) (*domain.Staff, error) {
	staffID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, domain.ErrStaffNotFound
	}

	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, domain.ErrStaffNotFound) {
			return nil, err
		}
		slog.Error("s.staffRepo.GetByID()", "staff_id", staffID, "error", err)
		return nil, domain.NewInternalError("failed to load staff", err)
	}
	return staff, nil
}

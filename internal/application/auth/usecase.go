package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/aquaserv-pro/internal/application/dto"
	"github.com/tu-usuario/aquaserv-pro/internal/domain"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/entity"
	"github.com/tu-usuario/aquaserv-pro/internal/domain/repository"
	"github.com/tu-usuario/aquaserv-pro/pkg/config"
	"github.com/tu-usuario/aquaserv-pro/pkg/jwt"
)

// UseCase registro de tenants, altas de personal y login de ambos tipos de
// actor. El registro de tenant crea también su suscripción de prueba.
type UseCase struct {
	adminRepo        repository.AdminRepository
	personnelRepo    repository.PersonnelRepository
	subscriptionRepo repository.SubscriptionRepository
	jwtCfg           config.JWTConfig
	trialDays        int
}

func NewUseCase(
	adminRepo repository.AdminRepository,
	personnelRepo repository.PersonnelRepository,
	subscriptionRepo repository.SubscriptionRepository,
	jwtCfg config.JWTConfig,
	trialDays int,
) *UseCase {
	return &UseCase{
		adminRepo:        adminRepo,
		personnelRepo:    personnelRepo,
		subscriptionRepo: subscriptionRepo,
		jwtCfg:           jwtCfg,
		trialDays:        trialDays,
	}
}

// RegisterTenant da de alta un admin dueño de negocio y su suscripción trial.
func (uc *UseCase) RegisterTenant(ctx context.Context, in dto.RegisterTenantRequest) (*dto.AdminResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.adminRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	admin := &entity.Admin{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		CompanyName:  strings.TrimSpace(in.CompanyName),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         entity.AdminRoleTenant,
		Status:       entity.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.adminRepo.Create(admin); err != nil {
		return nil, err
	}

	trialEnd := now.AddDate(0, 0, uc.trialDays)
	sub := &entity.Subscription{
		ID:          uuid.New().String(),
		TenantID:    admin.ID,
		Status:      entity.SubscriptionTrial,
		TrialEndsAt: &trialEnd,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.subscriptionRepo.Create(sub); err != nil {
		return nil, err
	}
	return toAdminResponse(admin), nil
}

// LoginAdmin autentica un admin. Errores de credenciales no distinguen
// "email no existe" de "password incorrecto".
func (uc *UseCase) LoginAdmin(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	admin, err := uc.adminRepo.GetByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if admin == nil || admin.Status != entity.StatusActive {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, admin.ID, admin.ID, domain.KindAdmin, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Admin: toAdminResponse(admin)}, nil
}

// LoginPersonnel autentica un trabajador de campo; el token lleva el tenant
// dueño para que toda lectura posterior quede acotada a él.
func (uc *UseCase) LoginPersonnel(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	p, err := uc.personnelRepo.GetByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsActive() {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, p.ID, p.TenantID, domain.KindPersonnel, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Personnel: toPersonnelResponse(p)}, nil
}

// CreatePersonnel alta de un trabajador dentro del tenant del admin.
func (uc *UseCase) CreatePersonnel(ctx context.Context, tenantID string, in dto.CreatePersonnelRequest) (*dto.PersonnelResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.personnelRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Personnel{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
		Status:       entity.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.personnelRepo.Create(p); err != nil {
		return nil, err
	}
	return toPersonnelResponse(p), nil
}

// ListPersonnel personal del tenant.
func (uc *UseCase) ListPersonnel(ctx context.Context, tenantID string, limit, offset int) ([]*dto.PersonnelResponse, error) {
	list, err := uc.personnelRepo.ListByTenant(tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PersonnelResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPersonnelResponse(p))
	}
	return out, nil
}

// DeactivatePersonnel baja lógica: el trabajador deja de poder loguearse y
// de ser asignable, pero su historial de trabajos permanece.
func (uc *UseCase) DeactivatePersonnel(ctx context.Context, tenantID, personnelID string) error {
	p, err := uc.personnelRepo.GetByID(personnelID)
	if err != nil {
		return err
	}
	if p == nil || p.TenantID != tenantID {
		return domain.ErrNotFound
	}
	p.Status = entity.StatusPassive
	p.UpdatedAt = time.Now()
	return uc.personnelRepo.Update(p)
}

func toAdminResponse(a *entity.Admin) *dto.AdminResponse {
	return &dto.AdminResponse{
		ID:          a.ID,
		Email:       a.Email,
		Name:        a.Name,
		CompanyName: a.CompanyName,
		Phone:       a.Phone,
		Role:        a.Role,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
	}
}

func toPersonnelResponse(p *entity.Personnel) *dto.PersonnelResponse {
	return &dto.PersonnelResponse{
		ID:        p.ID,
		TenantID:  p.TenantID,
		Email:     p.Email,
		Name:      p.Name,
		Phone:     p.Phone,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
	}
}

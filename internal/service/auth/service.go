package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/caresync/hms-api/internal/email"
	"github.com/caresync/hms-api/internal/model"
	"github.com/caresync/hms-api/internal/repository"
	pkgauth "github.com/caresync/hms-api/pkg/auth"
	apperrors "github.com/caresync/hms-api/pkg/errors"
	"github.com/caresync/hms-api/pkg/logger"
	"github.com/caresync/hms-api/pkg/security"
)

const resetTokenExpiry = 1 * time.Hour

type Service struct {
	profileRepo repository.ProfileRepository
	tokenRepo   repository.TokenRepository
	tokenSvc    pkgauth.TokenService
	hasher      security.PasswordHasher
	emailSvc    email.Service
	logger      *logger.Logger
}

func NewService(
	profileRepo repository.ProfileRepository,
	tokenRepo repository.TokenRepository,
	tokenSvc pkgauth.TokenService,
	hasher security.PasswordHasher,
	emailSvc email.Service,
	log *logger.Logger,
) *Service {
	return &Service{
		profileRepo: profileRepo,
		tokenRepo:   tokenRepo,
		tokenSvc:    tokenSvc,
		hasher:      hasher,
		emailSvc:    emailSvc,
		logger:      log,
	}
}

// Register creates a new profile. Administrator accounts cannot be
// self-registered; they are seeded by the bootstrap CLI or created by
// an existing administrator.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.Profile, error) {
	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))

	role := req.Role
	if role == "" {
		role = model.RolePatient
	}
	if !role.Valid() {
		return nil, apperrors.InvalidInputf("invalid role %q", req.Role)
	}
	if role == model.RoleAdmin {
		return nil, apperrors.AccessDenied("admin accounts cannot be self-registered")
	}

	if existing, err := s.profileRepo.GetByEmail(ctx, emailAddr); err == nil && existing != nil {
		return nil, apperrors.DuplicateUser(emailAddr)
	} else if err != nil && !apperrors.IsKind(err, apperrors.KindNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	profile := &model.Profile{
		Base:         model.Base{ID: uuid.New()},
		Email:        emailAddr,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         role,
		Phone:        req.Phone,
		NationalID:   req.NationalID,
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		if apperrors.IsKind(err, apperrors.KindConflict) {
			return nil, apperrors.DuplicateUser(emailAddr)
		}
		return nil, err
	}

	s.logger.Info("profile registered", "profile_id", profile.ID.String(), "role", string(role))
	return profile, nil
}

// Login verifies credentials and issues a bearer token. Unknown email
// and wrong password both fail with the same InvalidCredentials kind.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	profile, err := s.profileRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.InvalidCredentials()
	}

	if err := s.hasher.Compare(profile.PasswordHash, req.Password); err != nil {
		return nil, apperrors.InvalidCredentials()
	}

	token, err := s.tokenSvc.Issue(profile.ID)
	if err != nil {
		return nil, apperrors.Unexpected(err)
	}

	return &model.TokenResponse{Token: token, Profile: profile}, nil
}

// Authenticate resolves a bearer token to its profile. A valid token
// whose profile no longer exists is treated as unauthenticated.
func (s *Service) Authenticate(ctx context.Context, token string) (*model.Profile, error) {
	profileID, err := s.tokenSvc.Verify(token)
	if err != nil {
		return nil, apperrors.Unauthenticated(err)
	}

	profile, err := s.profileRepo.Get(ctx, profileID)
	if err != nil {
		return nil, apperrors.Unauthenticated(err)
	}
	return profile, nil
}

// ForgotPassword issues a reset token and mails it. An unknown email
// reports success to avoid disclosing which addresses are registered.
func (s *Service) ForgotPassword(ctx context.Context, emailAddr string) error {
	profile, err := s.profileRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return nil
	}

	token := uuid.New().String()
	if err := s.tokenRepo.StoreResetToken(ctx, profile.ID, token, time.Now().Add(resetTokenExpiry)); err != nil {
		return err
	}

	if err := s.emailSvc.SendPasswordReset(profile.Email, token); err != nil {
		s.logger.Error(err, "failed to send password reset email", "profile_id", profile.ID.String())
	}
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	profileID, err := s.tokenRepo.ValidateResetToken(ctx, token)
	if err != nil {
		return apperrors.InvalidInput("invalid or expired reset token")
	}

	profile, err := s.profileRepo.Get(ctx, profileID)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperrors.InvalidInput(err.Error())
	}

	profile.PasswordHash = hash
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return err
	}

	return s.tokenRepo.InvalidateResetToken(ctx, token)
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/prasanthzodiac/College-connect-sub000/internal/dto"
	"github.com/prasanthzodiac/College-connect-sub000/internal/model"
	"github.com/prasanthzodiac/College-connect-sub000/internal/repository"
	"github.com/prasanthzodiac/College-connect-sub000/pkg/jwt"
	"github.com/prasanthzodiac/College-connect-sub000/pkg/redis"
)

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrNoPermission       = errors.New("no permission for this operation")
	ErrRefreshRequired    = errors.New("refresh token required")
)

// Principal is the verified identity attached to a request.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

// AuthService handles registration, login and token lifecycle.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest, callerRole string) (*dto.UserBrief, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	GetCurrentUser(ctx context.Context, userID string) (*dto.UserBrief, error)
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
	// ResolveActor loads the request's user row, creating it on first
	// contact so externally-issued identities work without a signup step.
	ResolveActor(ctx context.Context, principal Principal) (*model.User, error)
}

type authService struct {
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	codec  *RollNoCodec
	logger *zap.Logger
}

// NewAuthService creates the auth service.
func NewAuthService(repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, codec *RollNoCodec, logger *zap.Logger) AuthService {
	return &authService{repo: repo, jwtMgr: jwtMgr, rdb: rdb, codec: codec, logger: logger}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest, callerRole string) (*dto.UserBrief, error) {
	role := req.Role
	if role == "" {
		role = model.RoleStudent
	}
	// Privileged accounts can only be created by an admin.
	if role != model.RoleStudent && callerRole != model.RoleAdmin {
		return nil, ErrNoPermission
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.repo.User.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	name := req.Name
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	user := &model.User{
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: string(hash),
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.UserID),
		zap.String("role", user.Role))

	brief := s.userBrief(user)
	return &brief, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repo.User.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "refresh" {
		return nil, ErrRefreshRequired
	}

	if s.rdb != nil {
		revoked, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("blacklist check failed", zap.Error(err))
		} else if revoked {
			return nil, jwt.ErrTokenInvalid
		}
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// Rotate: the old refresh token is revoked once the new pair exists.
	resp, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}
	if s.rdb != nil && claims.ExpiresAt != nil {
		if err := s.rdb.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
			s.logger.Warn("refresh token revocation failed", zap.Error(err))
		}
	}
	return resp, nil
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.BlacklistToken(ctx, jti, time.Until(expiresAt))
}

func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*dto.UserBrief, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	brief := s.userBrief(user)
	return &brief, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)

	return s.repo.User.Update(ctx, user)
}

func (s *authService) ResolveActor(ctx context.Context, principal Principal) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(principal.Email))

	if email != "" {
		user, err := s.repo.User.GetByEmail(ctx, email)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	} else if principal.UserID != "" {
		return s.repo.User.GetByID(ctx, principal.UserID)
	}

	// First contact: provision the row from the verified principal.
	role := principal.Role
	if role == "" {
		role = inferRoleFromEmail(email)
	}
	local, _, _ := strings.Cut(email, "@")

	user := &model.User{
		UserID: principal.UserID,
		Email:  email,
		Name:   local,
		Role:   role,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("actor auto-provisioned",
		zap.String("user_id", user.UserID),
		zap.String("role", user.Role))

	return user, nil
}

// inferRoleFromEmail is the legacy fallback for tokens minted without a
// role claim. The naming convention prefixes privileged accounts.
func inferRoleFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	switch {
	case strings.HasPrefix(local, "admin"):
		return model.RoleAdmin
	case strings.HasPrefix(local, "staff"):
		return model.RoleStaff
	default:
		return model.RoleStudent
	}
}

func (s *authService) issueTokens(user *model.User) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.jwtMgr.AccessTokenTTL().Seconds()),
		User:         s.userBrief(user),
	}, nil
}

func (s *authService) userBrief(user *model.User) dto.UserBrief {
	return dto.UserBrief{
		ID:     user.UserID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		RollNo: s.codec.DeriveRollNumber(user.Email),
	}
}

package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/diamondgarment/backend/apperror"
	"github.com/diamondgarment/backend/models"
	"github.com/diamondgarment/backend/repositories"
)

const invalidCredentials = "Invalid email or password"

// UserStore is the persistence the auth service needs.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	CountByRole(ctx context.Context, role models.Role) (int64, error)
	DeleteByRole(ctx context.Context, role models.Role) (int64, error)
}

// LoginMeta is request metadata recorded with a login attempt. The session id
// is already on the request-scoped logger.
type LoginMeta struct {
	IP string
}

type AuthService struct {
	users     UserStore
	tokens    *TokenManager
	hasher    *Hasher
	validator StructValidator
	admin     models.AdminCredentials
	now       func() time.Time

	// dummyHash is compared against when the email is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash string
}

func NewAuthService(users UserStore, tokens *TokenManager, hasher *Hasher, v StructValidator, admin models.AdminCredentials) *AuthService {
	dummy, _ := hasher.Hash("not-a-real-password")
	return &AuthService{
		users:     users,
		tokens:    tokens,
		hasher:    hasher,
		validator: v,
		admin:     admin,
		now:       time.Now,
		dummyHash: dummy,
	}
}

// Login exchanges credentials for a token. Unknown email and wrong password
// fail with the same message.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest, meta LoginMeta) (*models.LoginResult, error) {
	logger := zerolog.Ctx(ctx).With().
		Str("email", req.Email).
		Str("ip", meta.IP).
		Str("browser", req.ClientInfo.Browser).
		Str("screen_size", req.ClientInfo.ScreenSize).
		Str("language", req.ClientInfo.Language).
		Logger()

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		logger.Warn().Msg("login attempt without credentials")
		return nil, apperror.Validation("Please provide an email and password")
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.Internal("Server Error", err)
		}
		s.hasher.Check(req.Password, s.dummyHash)
		logger.Warn().Msg("login failed")
		return nil, apperror.Unauthorized(invalidCredentials)
	}

	if !s.hasher.Check(req.Password, user.Password) {
		logger.Warn().Msg("login failed")
		return nil, apperror.Unauthorized(invalidCredentials)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, apperror.Internal("Server Error", err)
	}

	logger.Info().Str("user_id", user.ID.Hex()).Msg("login succeeded")
	return &models.LoginResult{Token: token, User: user}, nil
}

// VerifyToken is used by the bearer middleware.
func (s *AuthService) VerifyToken(token string) (*Claims, error) {
	return s.tokens.Verify(token)
}

// CurrentUser returns the account behind already verified claims.
func (s *AuthService) CurrentUser(ctx context.Context, claims *Claims) (*models.User, error) {
	user, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperror.NotFound("User not found")
	}
	if err != nil {
		return nil, apperror.Internal("Server Error", err)
	}
	return user, nil
}

// Authorize checks the stored role, not the one in the token.
func (s *AuthService) Authorize(ctx context.Context, claims *Claims, required models.Role) (*models.User, error) {
	user, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperror.Unauthorized("Not authorized to access this route")
	}
	if err != nil {
		return nil, apperror.Internal("Server Error", err)
	}
	if !user.Role.Satisfies(required) {
		return nil, apperror.Forbidden("User role " + string(user.Role) + " is not authorized to access this route")
	}
	return user, nil
}

// Logout only acknowledges. Issued tokens stay valid until they expire.
func (s *AuthService) Logout(ctx context.Context, claims *Claims) {
	zerolog.Ctx(ctx).Info().Str("user_id", claims.UserID).Msg("logout")
}

// Register adds another admin account. Emails are unique.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	return s.createUser(ctx, models.AdminCredentials{Name: req.Name, Email: req.Email, Password: req.Password})
}

// CreateAdmin creates the configured admin unless one already exists.
func (s *AuthService) CreateAdmin(ctx context.Context) (*models.User, error) {
	n, err := s.users.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return nil, apperror.Internal("Server Error", err)
	}
	if n > 0 {
		return nil, apperror.Conflict("Admin user already exists")
	}
	return s.createUser(ctx, s.admin)
}

// ResetAdmin replaces every admin with a single account using the configured credentials.
func (s *AuthService) ResetAdmin(ctx context.Context) (*models.User, error) {
	ctx = context.WithoutCancel(ctx)
	removed, err := s.users.DeleteByRole(ctx, models.RoleAdmin)
	if err != nil {
		return nil, apperror.Internal("Server Error", err)
	}
	zerolog.Ctx(ctx).Warn().Int64("removed", removed).Msg("admin accounts reset")
	return s.createUser(ctx, s.admin)
}

func (s *AuthService) createUser(ctx context.Context, creds models.AdminCredentials) (*models.User, error) {
	hash, err := s.hasher.Hash(creds.Password)
	if err != nil {
		return nil, apperror.Internal("Server Error", err)
	}

	user := models.NewUser(creds.Name, creds.Email, hash, models.RoleAdmin, s.now())
	if err := s.users.Create(context.WithoutCancel(ctx), user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperror.Conflict("A user with this email already exists")
		}
		return nil, apperror.Internal("Server Error", err)
	}
	return user, nil
}

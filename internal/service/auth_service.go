package service

import (
	"context"
	"fmt"
	"time"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/auth"
	"backoffice-service/internal/broker"
	"backoffice-service/internal/models"
	"backoffice-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthUserRepository is the account access the auth flows need.
type AuthUserRepository interface {
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	EmailInUse(ctx context.Context, email string, excludeID int64) (bool, error)
	PhoneInUse(ctx context.Context, phone string, excludeID int64) (bool, error)
	InsertUser(ctx context.Context, user *models.User) error
	TouchLastLogin(ctx context.Context, id int64) error
}

type AuthRoleRepository interface {
	GetRoleByID(ctx context.Context, id int64) (*models.Role, error)
	GetRoleByName(ctx context.Context, name string) (*models.Role, error)
}

type TokenIssuer interface {
	Generate(username, role string) (string, error)
	Validate(tokenString string) (*auth.Claims, error)
}

// LoginResult carries everything a successful login produces: the JWT
// for API clients and the session for browser clients. Username is the
// identifier the user submitted (email or phone), echoed back as-is.
type LoginResult struct {
	Token    string
	Session  *auth.Session
	User     *models.User
	Username string
	Role     string
}

// AuthService implements login, self-registration, token validation and
// logout. Login failures are always reported as a single unauthorized
// error so callers cannot probe which accounts exist.
type AuthService struct {
	users     AuthUserRepository
	roles     AuthRoleRepository
	hasher    PasswordHasher
	tokens    TokenIssuer
	sessions  auth.SessionRegistry
	publisher broker.Publisher
	logger    *zap.Logger
}

func NewAuthService(users AuthUserRepository, roles AuthRoleRepository,
	hasher PasswordHasher, tokens TokenIssuer, sessions auth.SessionRegistry,
	publisher broker.Publisher) *AuthService {
	return &AuthService{
		users:     users,
		roles:     roles,
		hasher:    hasher,
		tokens:    tokens,
		sessions:  sessions,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// Login authenticates by email or phone. A fresh session replaces any
// previous one for the same user.
func (s *AuthService) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	user, err := s.users.GetUserByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		util.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, apperr.Unauthorized("invalid credentials")
	}
	if !s.hasher.Verify(password, user.Password) {
		util.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, apperr.Unauthorized("invalid credentials")
	}

	role, err := s.roles.GetRoleByID(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperr.Internal(fmt.Errorf("user %d references missing role %d", user.ID, user.RoleID))
	}

	// the token and session carry the identifier the user signed in
	// with, not the canonical email
	token, err := s.tokens.Generate(login, role.Name)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	session, err := s.sessions.Create(ctx, user.ID, login, role.Name)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("Failed to stamp last login",
			zap.Int64("user_id", user.ID), zap.Error(err))
	}

	util.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info("User logged in",
		zap.Int64("user_id", user.ID), zap.String("role", role.Name))
	return &LoginResult{Token: token, Session: session, User: user, Username: login, Role: role.Name}, nil
}

// Register creates a Client account from the public registration form.
func (s *AuthService) Register(ctx context.Context, user *models.User) error {
	var fields []apperr.FieldError
	if user.Name == "" {
		fields = append(fields, apperr.FieldError{Field: "name", Message: "must not be blank"})
	}
	if user.Email == "" {
		fields = append(fields, apperr.FieldError{Field: "email", Message: "must not be blank"})
	}
	if user.Password == "" {
		fields = append(fields, apperr.FieldError{Field: "password", Message: "must not be blank"})
	}
	if len(fields) > 0 {
		return apperr.Validation("validation failed", fields...)
	}

	emailTaken, err := s.users.EmailInUse(ctx, user.Email, 0)
	if err != nil {
		return err
	}
	if emailTaken {
		return apperr.Validation("validation failed",
			apperr.FieldError{Field: "email", Message: "email already in use"})
	}
	if user.Phone != "" {
		phoneTaken, err := s.users.PhoneInUse(ctx, user.Phone, 0)
		if err != nil {
			return err
		}
		if phoneTaken {
			return apperr.Validation("validation failed",
				apperr.FieldError{Field: "phone", Message: "phone already in use"})
		}
	}

	clientRole, err := s.roles.GetRoleByName(ctx, models.RoleClient)
	if err != nil {
		return err
	}
	if clientRole == nil {
		return apperr.Internal(fmt.Errorf("role %q is not seeded", models.RoleClient))
	}

	hash, err := s.hasher.Hash(user.Password)
	if err != nil {
		return apperr.Internal(err)
	}
	user.Password = hash
	user.RoleID = clientRole.ID
	user.Active = true
	user.Deleted = false

	if err := s.users.InsertUser(ctx, user); err != nil {
		return err
	}
	util.UsersRegisteredTotal.Inc()
	s.logger.Info("User registered",
		zap.Int64("user_id", user.ID), zap.String("email", user.Email))

	event := &models.UserRegisteredEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeUserRegistered,
			Timestamp: time.Now().UTC(),
		},
		UserID: user.ID,
		Email:  user.Email,
		Role:   models.RoleClient,
	}
	if err := s.publisher.PublishUserRegistered(ctx, event); err != nil {
		s.logger.Error("Failed to publish user registered event",
			zap.Int64("user_id", user.ID), zap.Error(err))
	}
	return nil
}

// ValidateToken checks the bearer token and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*auth.Claims, error) {
	claims, err := s.tokens.Validate(tokenString)
	if err != nil {
		return nil, apperr.Unauthorized("invalid or expired token")
	}
	return claims, nil
}

// GetSession resolves a session cookie value, or nil when absent.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*auth.Session, error) {
	return s.sessions.Get(ctx, sessionID)
}

// Logout destroys the session; destroying a missing session is a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Destroy(ctx, sessionID)
}

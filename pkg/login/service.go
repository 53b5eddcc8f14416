package login

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"

	apperrors "github.com/redcore/yabutech-api/pkg/errors"
	"github.com/redcore/yabutech-api/pkg/token"
	"github.com/redcore/yabutech-api/pkg/user"
)

// tokenName labels tokens issued through login and registration
const tokenName = "auth_token"

// credentialsMessage is the single failure message for unknown emails and
// wrong passwords alike, so callers cannot enumerate accounts.
const credentialsMessage = "The provided credentials are incorrect."

// LoginParams contains the credentials presented at login
type LoginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the outcome of a successful login or registration
type LoginResult struct {
	Token string
	User  user.UserWithRole
}

// LoginService authenticates users and registers new ones, issuing an
// access token on success
type LoginService struct {
	users       user.UserRepository
	userService *user.UserService
	tokens      *token.TokenService
	hasher      PasswordHasher
}

// NewLoginService creates a new login service
func NewLoginService(users user.UserRepository, userService *user.UserService, tokens *token.TokenService, hasher PasswordHasher) *LoginService {
	return &LoginService{
		users:       users,
		userService: userService,
		tokens:      tokens,
		hasher:      hasher,
	}
}

// Login verifies the presented credentials and issues a token. The hash is
// always the comparison target; plaintext is never compared against stored
// state.
func (s *LoginService) Login(ctx context.Context, params LoginParams) (LoginResult, error) {
	v := apperrors.NewValidation()
	if params.Email == "" {
		v.Add("email", "The email field is required.")
	} else if _, err := mail.ParseAddress(params.Email); err != nil {
		v.Add("email", "The email field must be a valid email address.")
	}
	if params.Password == "" {
		v.Add("password", "The password field is required.")
	}
	if err := v.Err(); err != nil {
		return LoginResult{}, err
	}

	found, err := s.users.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return LoginResult{}, apperrors.New(apperrors.ErrCodeInvalidCredentials, credentialsMessage)
		}
		slog.Error("Failed to look up user for login", "err", err)
		return LoginResult{}, apperrors.Internal(err, "failed to log in")
	}

	match, err := s.hasher.Verify(params.Password, found.PasswordHash)
	if err != nil {
		slog.Error("Password verification failed", "err", err)
		return LoginResult{}, apperrors.Internal(err, "failed to log in")
	}
	if !match {
		return LoginResult{}, apperrors.New(apperrors.ErrCodeInvalidCredentials, credentialsMessage)
	}

	return s.issueFor(ctx, found.ID)
}

// Register creates a user with the same validation as the user API and
// issues a token bound to the new account
func (s *LoginService) Register(ctx context.Context, params user.CreateUserParams) (LoginResult, error) {
	created, err := s.userService.CreateUser(ctx, params)
	if err != nil {
		return LoginResult{}, err
	}
	return s.issueFor(ctx, created.ID)
}

// Logout revokes every token bound to the user
func (s *LoginService) Logout(ctx context.Context, userID int64) error {
	if err := s.tokens.RevokeAll(ctx, userID); err != nil {
		slog.Error("Failed to revoke tokens", "user_id", userID, "err", err)
		return apperrors.Internal(err, "failed to log out")
	}
	return nil
}

func (s *LoginService) issueFor(ctx context.Context, userID int64) (LoginResult, error) {
	plaintext, _, err := s.tokens.Issue(ctx, userID, tokenName)
	if err != nil {
		return LoginResult{}, apperrors.Internal(err, "failed to issue token")
	}

	joined, err := s.users.GetUserById(ctx, userID)
	if err != nil {
		slog.Error("Failed to load user after token issuance", "user_id", userID, "err", err)
		return LoginResult{}, apperrors.Internal(err, "failed to load user")
	}

	return LoginResult{Token: plaintext, User: joined}, nil
}

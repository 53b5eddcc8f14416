package user

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"

	apperrors "github.com/redcore/yabutech-api/pkg/errors"
	"github.com/redcore/yabutech-api/pkg/role"
)

// PasswordHasher is the credential-hashing dependency of the user service.
// Satisfied by login.BcryptHasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// UserService provides user management operations
type UserService struct {
	repo     UserRepository
	roleRepo role.RoleRepository
	hasher   PasswordHasher
}

// NewUserService creates a new user service
func NewUserService(repo UserRepository, roleRepo role.RoleRepository, hasher PasswordHasher) *UserService {
	return &UserService{
		repo:     repo,
		roleRepo: roleRepo,
		hasher:   hasher,
	}
}

// FindUsers returns all users joined with their roles
func (s *UserService) FindUsers(ctx context.Context) ([]UserWithRole, error) {
	users, err := s.repo.FindUsers(ctx)
	if err != nil {
		slog.Error("Failed to find users", "err", err)
		return nil, apperrors.Internal(err, "failed to fetch users")
	}
	return users, nil
}

// CreateUser validates input, hashes the password and persists a new user.
// The plaintext password is never stored.
func (s *UserService) CreateUser(ctx context.Context, params CreateUserParams) (UserWithRole, error) {
	err := s.validate(ctx, validateInput{
		FullName:             params.FullName,
		Email:                params.Email,
		Password:             &params.Password,
		PasswordConfirmation: &params.PasswordConfirmation,
		RoleID:               params.RoleID,
	})
	if err != nil {
		return UserWithRole{}, err
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		slog.Error("Failed to hash password", "err", err)
		return UserWithRole{}, apperrors.Internal(err, "failed to create user")
	}

	created, err := s.repo.CreateUser(ctx, CreateUserRow{
		FullName:     params.FullName,
		Email:        params.Email,
		PasswordHash: hash,
		RoleID:       params.RoleID,
	})
	if err != nil {
		// Concurrent create with the same email loses to the unique index
		if errors.Is(err, ErrEmailTaken) {
			return UserWithRole{}, emailTakenError()
		}
		slog.Error("Failed to create user", "email", params.Email, "err", err)
		return UserWithRole{}, apperrors.Internal(err, "failed to create user")
	}

	return s.getJoined(ctx, created.ID)
}

// GetUser retrieves a user with role by id
func (s *UserService) GetUser(ctx context.Context, id int64) (UserWithRole, error) {
	u, err := s.repo.GetUserById(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return UserWithRole{}, apperrors.New(apperrors.ErrCodeUserNotFound, "user not found")
		}
		slog.Error("Failed to get user", "id", id, "err", err)
		return UserWithRole{}, apperrors.Internal(err, "failed to get user")
	}
	return u, nil
}

// UpdateUser validates input and updates an existing user. When no password
// is supplied the stored hash is carried over unchanged; when one is, it is
// validated and re-hashed, invalidating the old plaintext.
func (s *UserService) UpdateUser(ctx context.Context, params UpdateUserParams) (UserWithRole, error) {
	existing, err := s.repo.GetUserById(ctx, params.ID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return UserWithRole{}, apperrors.New(apperrors.ErrCodeUserNotFound, "user not found")
		}
		slog.Error("Failed to get user", "id", params.ID, "err", err)
		return UserWithRole{}, apperrors.Internal(err, "failed to get user")
	}

	err = s.validate(ctx, validateInput{
		FullName:             params.FullName,
		Email:                params.Email,
		Password:             params.Password,
		PasswordConfirmation: params.PasswordConfirmation,
		RoleID:               params.RoleID,
		ExcludeUserID:        params.ID,
		PasswordOptional:     true,
	})
	if err != nil {
		return UserWithRole{}, err
	}

	hash := existing.PasswordHash
	if params.Password != nil {
		hash, err = s.hasher.Hash(*params.Password)
		if err != nil {
			slog.Error("Failed to hash password", "err", err)
			return UserWithRole{}, apperrors.Internal(err, "failed to update user")
		}
	}

	_, err = s.repo.UpdateUser(ctx, UpdateUserRow{
		ID:           params.ID,
		FullName:     params.FullName,
		Email:        params.Email,
		PasswordHash: hash,
		RoleID:       params.RoleID,
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return UserWithRole{}, emailTakenError()
		}
		slog.Error("Failed to update user", "id", params.ID, "err", err)
		return UserWithRole{}, apperrors.Internal(err, "failed to update user")
	}

	return s.getJoined(ctx, params.ID)
}

// DeleteUser removes a user
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return apperrors.New(apperrors.ErrCodeUserNotFound, "user not found")
		}
		slog.Error("Failed to delete user", "id", id, "err", err)
		return apperrors.Internal(err, "failed to delete user")
	}
	return nil
}

func (s *UserService) getJoined(ctx context.Context, id int64) (UserWithRole, error) {
	u, err := s.repo.GetUserById(ctx, id)
	if err != nil {
		slog.Error("Failed to load user with role", "id", id, "err", err)
		return UserWithRole{}, apperrors.Internal(err, "failed to load user")
	}
	return u, nil
}

type validateInput struct {
	FullName             string
	Email                string
	Password             *string
	PasswordConfirmation *string
	RoleID               int64
	ExcludeUserID        int64
	PasswordOptional     bool
}

const (
	maxFieldLength = 255

	// bcrypt input limit
	maxPasswordLength = 72
)

// validate applies the write-time rules: required fields, email format and
// uniqueness (excluding the record being updated), password length and
// confirmation, and role_id resolving to an existing role.
func (s *UserService) validate(ctx context.Context, in validateInput) error {
	v := apperrors.NewValidation()

	if in.FullName == "" {
		v.Add("full_name", "The full name field is required.")
	} else if len(in.FullName) > maxFieldLength {
		v.Add("full_name", "The full name field must not be greater than 255 characters.")
	}

	switch {
	case in.Email == "":
		v.Add("email", "The email field is required.")
	case len(in.Email) > maxFieldLength:
		v.Add("email", "The email field must not be greater than 255 characters.")
	default:
		if _, err := mail.ParseAddress(in.Email); err != nil {
			v.Add("email", "The email field must be a valid email address.")
		} else {
			existing, err := s.repo.GetUserByEmail(ctx, in.Email)
			if err == nil && existing.ID != in.ExcludeUserID {
				v.Add("email", "The email has already been taken.")
			} else if err != nil && !errors.Is(err, ErrUserNotFound) {
				slog.Error("Failed checking email uniqueness", "email", in.Email, "err", err)
				return apperrors.Internal(err, "failed to validate user")
			}
		}
	}

	if in.Password == nil {
		if !in.PasswordOptional {
			v.Add("password", "The password field is required.")
		}
	} else {
		password := *in.Password
		confirmation := ""
		if in.PasswordConfirmation != nil {
			confirmation = *in.PasswordConfirmation
		}
		if password == "" {
			v.Add("password", "The password field is required.")
		} else if len(password) < 8 {
			v.Add("password", "The password field must be at least 8 characters.")
		} else if len(password) > maxPasswordLength {
			// bcrypt rejects inputs past 72 bytes; cap here so an oversized
			// password fails validation, not hashing
			v.Add("password", "The password field must not be greater than 72 characters.")
		}
		if password != confirmation {
			v.Add("password", "The password field confirmation does not match.")
		}
	}

	if in.RoleID == 0 {
		v.Add("role_id", "The role id field is required.")
	} else if _, err := s.roleRepo.GetRoleById(ctx, in.RoleID); err != nil {
		if errors.Is(err, role.ErrRoleNotFound) {
			v.Add("role_id", "The selected role id is invalid.")
		} else {
			slog.Error("Failed checking role reference", "role_id", in.RoleID, "err", err)
			return apperrors.Internal(err, "failed to validate user")
		}
	}

	return v.Err()
}

func emailTakenError() error {
	v := apperrors.NewValidation()
	v.Add("email", "The email has already been taken.")
	return v.Err()
}

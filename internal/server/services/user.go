// Package services contains server-side business logic. UserService handles
// signup, login, profile and avatar updates, and the administrative user
// listing and removal.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/cryptox"
	"github.com/dmitrijs2005/gophaccounts/internal/dbx"
	"github.com/dmitrijs2005/gophaccounts/internal/imagex"
	"github.com/dmitrijs2005/gophaccounts/internal/server/auth"
	"github.com/dmitrijs2005/gophaccounts/internal/server/config"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophaccounts/internal/server/storage"
)

// LoginResult is returned by a successful Login.
type LoginResult struct {
	Token string
	User  *models.User
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenService
	uploader    storage.Uploader
	hasher      *cryptox.PasswordHasher
	images      imagex.Validator

	// compared against when the username is unknown, so both login
	// failure paths pay for one bcrypt comparison
	dummyHash string
}

// NewUserService constructs a UserService. Hashing cost and the avatar size
// cap come from cfg.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenService, uploader storage.Uploader, cfg *config.Config) (*UserService, error) {
	hasher := cryptox.NewPasswordHasher(cfg.BcryptCost)
	dummy, _, err := hasher.Hash("gophaccounts-dummy-password")
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}

	return &UserService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		uploader:    uploader,
		hasher:      hasher,
		images:      imagex.NewValidator(cfg.MaxAvatarSize),
		dummyHash:   dummy,
	}, nil
}

// Login checks the credentials and issues an access token. An unknown
// username and a wrong password fail with the same error.
func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	repo := s.repomanager.Users(s.db)

	// signup stores the trimmed name
	username = strings.TrimSpace(username)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return nil, common.ErrorInvalidCredentials
		}
		return nil, internalError(err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrorInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, internalError(err)
	}

	return &LoginResult{Token: token, User: user}, nil
}

// Signup creates an account. When an avatar is supplied it is validated and
// uploaded first; any failure leaves the directory untouched.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	in = in.normalized()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByUsername(ctx, in.UserName); err == nil {
		return nil, common.ErrorDuplicateUsername
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, internalError(err)
	}

	var avatarURL string
	if in.Avatar != "" {
		url, err := s.uploadAvatar(ctx, in.Avatar)
		if err != nil {
			return nil, err
		}
		avatarURL = url
	}

	hash, salt, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, internalError(err)
	}

	// role is left to the directory default
	user, err := repo.Create(ctx, &models.User{
		UserName:     in.UserName,
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: hash,
		PasswordSalt: salt,
		Avatar:       avatarURL,
	})
	if err != nil {
		if errors.Is(err, common.ErrorDuplicateUsername) {
			return nil, err
		}
		return nil, internalError(err)
	}

	return user, nil
}

// UpdateProfile applies the fields set in patch and leaves the rest untouched.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (*models.User, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return s.GetUser(ctx, userID)
	}

	var updated *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		user, err := repo.LockByID(ctx, userID)
		if err != nil {
			return err
		}

		if patch.Email != nil {
			user.Email = *patch.Email
		}
		if patch.FullName != nil {
			user.FullName = *patch.FullName
		}

		updated, err = repo.Update(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, internalError(err)
	}

	return updated, nil
}

// UpdateAvatar replaces the avatar. The stored URL only changes after the new
// image has been uploaded.
func (s *UserService) UpdateAvatar(ctx context.Context, userID, base64Image string) (*models.User, error) {
	if err := s.images.Validate(base64Image); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)
	if _, err := repo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, internalError(err)
	}

	url, err := s.uploadAvatar(ctx, base64Image)
	if err != nil {
		return nil, err
	}

	user, err := repo.UpdateAvatar(ctx, userID, url)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, internalError(err)
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, internalError(err)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, internalError(err)
	}
	return users, nil
}

func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.repomanager.Users(s.db).Delete(ctx, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return internalError(err)
	}
	return nil
}

// --- helpers below ---

func (s *UserService) uploadAvatar(ctx context.Context, dataURI string) (string, error) {
	img, err := s.images.Decode(dataURI)
	if err != nil {
		return "", err
	}

	url, err := s.uploader.Upload(ctx, img.Data, img.Key, img.ContentType)
	if err != nil {
		if errors.Is(err, common.ErrorStorage) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", common.ErrorStorage, err)
	}
	return url, nil
}

func internalError(err error) error {
	return fmt.Errorf("%w: %w", common.ErrorInternal, err)
}

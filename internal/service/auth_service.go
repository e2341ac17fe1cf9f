// Package service contains the application's business logic.
package service

import (
	"context"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// AuthService implements the signup/login/logout/profile use cases.
type AuthService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	cfg      *config.Config
}

// NewAuthService creates an AuthService.
func NewAuthService(userRepo repository.UserRepository, postRepo repository.PostRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		postRepo: postRepo,
		cfg:      cfg,
	}
}

// SignupInput is the signup request payload.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput is the login request payload.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult carries a fresh token and the sanitized user.
type LoginResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// ProfileResult is the authenticated user's profile view.
type ProfileResult struct {
	User  models.PublicUser `json:"user"`
	Posts []*models.Post    `json:"posts"`
	Stats ProfileStats      `json:"stats"`
}

// ProfileStats aggregates the author's publishing activity.
type ProfileStats struct {
	PostCount  int64 `json:"postCount"`
	TotalViews int64 `json:"totalViews"`
}

// Signup registers a new account. The hash is applied here, before the
// record ever reaches storage; signup does not log the user in.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.PublicUser, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	// Advisory pre-check; the unique index in the repository is the real guard.
	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewDuplicateEmailError()
	}

	hashed, err := auth.HashPassword(in.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:      in.Username,
		Email:         in.Email,
		Password:      hashed,
		ProfileImgURL: models.DefaultProfileImageURL,
		Role:          models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	pub := user.Public()
	return &pub, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password produce the same outward error.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewInvalidCredentialsError()
	}

	if err := auth.CheckPassword(in.Password, user.Password); err != nil {
		return nil, models.NewInvalidCredentialsError()
	}

	token, err := auth.IssueToken(user, s.cfg.JWTSecret, s.cfg.TokenTTL)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &LoginResult{
		Token: token,
		User:  user.Public(),
	}, nil
}

// Logout performs no server-side state change; tokens are stateless and
// cannot be revoked. The endpoint exists for client symmetry.
func (s *AuthService) Logout(ctx context.Context, _ *models.User) error {
	return nil
}

// GetProfile returns the sanitized user, their 10 most recent posts, and
// aggregate stats computed across all of their posts.
func (s *AuthService) GetProfile(ctx context.Context, user *models.User) (*ProfileResult, error) {
	const recentLimit = 10

	posts, _, err := s.postRepo.GetByAuthorID(ctx, user.ID, recentLimit, 0)
	if err != nil {
		return nil, err
	}

	postCount, totalViews, err := s.postRepo.AuthorStats(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &ProfileResult{
		User:  user.Public(),
		Posts: posts,
		Stats: ProfileStats{
			PostCount:  postCount,
			TotalViews: totalViews,
		},
	}, nil
}

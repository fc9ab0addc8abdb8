package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	"github.com/sangkips/bizhub-api/internal/domain/repository"
	"github.com/sangkips/bizhub-api/pkg/apperror"
	"github.com/sangkips/bizhub-api/pkg/oauth"
	"github.com/sangkips/bizhub-api/pkg/utils"
	"golang.org/x/oauth2"
)

// DefaultRoleName is assigned to every self-registered user
const DefaultRoleName = entity.RoleUser

// GoogleProvider is the part of the Google OAuth client the auth flow uses
type GoogleProvider interface {
	IsConfigured() bool
	GetAuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*oauth.GoogleUserInfo, error)
}

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo          repository.UserRepository
	roleRepo          repository.RoleRepository
	businessRepo      repository.BusinessRepository
	passwordResetRepo repository.PasswordResetTokenRepository
	jwtManager        *utils.JWTManager
	mailer            Mailer
	google            GoogleProvider
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	businessRepo repository.BusinessRepository,
	passwordResetRepo repository.PasswordResetTokenRepository,
	jwtManager *utils.JWTManager,
	mailer Mailer,
	google GoogleProvider,
) *AuthService {
	return &AuthService{
		userRepo:          userRepo,
		roleRepo:          roleRepo,
		businessRepo:      businessRepo,
		passwordResetRepo: passwordResetRepo,
		jwtManager:        jwtManager,
		mailer:            mailer,
		google:            google,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
	Permissions  []string
	Onboarded    bool
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user.ID)
}

// RegisterInput represents the registration input
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Register creates a new user account with the default role
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*entity.User, error) {
	emailAddr := normalizeEmail(input.Email)
	existingUser, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	username, err := s.availableUsername(ctx, emailAddr)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Username:  username,
		Email:     emailAddr,
		Password:  hashedPassword,
		Provider:  "local",
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.assignDefaultRole(ctx, user.ID)
	return user, nil
}

// GoogleAuthURL returns the consent URL for the given state
func (s *AuthService) GoogleAuthURL(state string) (string, error) {
	if s.google == nil || !s.google.IsConfigured() {
		return "", apperror.NewUnavailableError(oauth.ErrOAuthNotConfigured.Error())
	}
	return s.google.GetAuthURL(state), nil
}

// GoogleLogin exchanges an authorization code, then finds or creates the
// user with the Google account's email and issues tokens.
func (s *AuthService) GoogleLogin(ctx context.Context, code string) (*LoginOutput, error) {
	if s.google == nil || !s.google.IsConfigured() {
		return nil, apperror.NewUnavailableError(oauth.ErrOAuthNotConfigured.Error())
	}

	token, err := s.google.ExchangeCode(ctx, code)
	if err != nil {
		return nil, apperror.NewBadRequestError(oauth.ErrInvalidCode.Error())
	}
	info, err := s.google.GetUserInfo(ctx, token)
	if err != nil {
		return nil, apperror.NewBadRequestError(oauth.ErrFailedToGetUser.Error())
	}
	if info.Email == "" || !info.VerifiedEmail {
		return nil, apperror.NewBadRequestError("Google account email is not verified")
	}

	emailAddr := normalizeEmail(info.Email)
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}

	if user == nil {
		username, err := s.availableUsername(ctx, emailAddr)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		providerID := info.ID
		user = &entity.User{
			FirstName:       firstNonEmpty(info.GivenName, info.Name, username),
			LastName:        info.FamilyName,
			Username:        username,
			Email:           emailAddr,
			Provider:        "google",
			ProviderID:      &providerID,
			EmailVerifiedAt: &now,
		}
		if info.Picture != "" {
			user.Photo = &info.Picture
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		s.assignDefaultRole(ctx, user.ID)
	} else if user.ProviderID == nil {
		providerID := info.ID
		user.ProviderID = &providerID
		if user.EmailVerifiedAt == nil {
			now := time.Now()
			user.EmailVerifiedAt = &now
		}
		if err := s.userRepo.Update(ctx, user); err != nil {
			log.Printf("Warning: failed to link Google account for %s: %v", emailAddr, err)
		}
	}

	return s.issueTokens(ctx, user.ID)
}

// RefreshToken generates new tokens from a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}
	return s.issueTokens(ctx, userID)
}

// GetCurrentUser returns the current user by ID
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// ChangePasswordInput represents the change password input
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// ChangePassword changes the user's password
func (s *AuthService) ChangePassword(ctx context.Context, input *ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}

	// Google-only accounts have no password to check
	if user.Password != "" && !utils.CheckPasswordHash(input.CurrentPassword, user.Password) {
		return apperror.NewBadRequestError("Current password is incorrect")
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	return s.userRepo.Update(ctx, user)
}

// UpdateProfileInput represents the update profile input
type UpdateProfileInput struct {
	UserID    uuid.UUID
	FirstName string
	LastName  string
	Username  string
	Photo     *string
	Phone     *string
}

// UpdateProfile updates the user's profile
func (s *AuthService) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if input.Username != "" && input.Username != user.Username {
		taken, err := s.userRepo.UsernameTaken(ctx, input.Username, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperror.NewConflictError("Username already taken")
		}
		user.Username = input.Username
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Photo != nil {
		user.Photo = input.Photo
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.GetCurrentUser(ctx, user.ID)
}

// ForgotPasswordInput represents the forgot password input
type ForgotPasswordInput struct {
	Email string
}

// ForgotPassword emails a one hour reset token. It reports success whether
// or not the address is registered.
func (s *AuthService) ForgotPassword(ctx context.Context, input *ForgotPasswordInput) error {
	emailAddr := normalizeEmail(input.Email)
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		log.Printf("Warning: forgot-password lookup failed: %v", err)
		return nil
	}
	if user == nil {
		return nil
	}

	if err := s.passwordResetRepo.DeleteForUser(ctx, user.ID); err != nil {
		log.Printf("Warning: failed to clear old reset tokens for %s: %v", emailAddr, err)
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return err
	}
	token := hex.EncodeToString(tokenBytes)

	if err := s.passwordResetRepo.Create(ctx, entity.NewPasswordResetToken(user.ID, token, time.Now())); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordResetEmail(emailAddr, token); err != nil {
		log.Printf("Warning: failed to send password reset email to %s: %v", emailAddr, err)
	}
	return nil
}

// ResetPasswordInput represents the reset password input
type ResetPasswordInput struct {
	Email       string
	Token       string
	NewPassword string
}

// ResetPassword resets the user's password using a valid token
func (s *AuthService) ResetPassword(ctx context.Context, input *ResetPasswordInput) error {
	invalid := apperror.NewBadRequestError("Invalid or expired reset token")
	emailAddr := normalizeEmail(input.Email)

	resetToken, err := s.passwordResetRepo.GetByHash(ctx, entity.HashResetToken(input.Token))
	if err != nil {
		return err
	}
	if resetToken == nil || !resetToken.Usable(time.Now()) {
		return invalid
	}

	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if user == nil || user.ID != resetToken.UserID {
		return invalid
	}
	if err := s.passwordResetRepo.MarkUsed(ctx, resetToken.ID); err != nil {
		return invalid
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashedPassword
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	if err := s.passwordResetRepo.DeleteForUser(ctx, user.ID); err != nil {
		log.Printf("Warning: failed to clear reset tokens for %s: %v", emailAddr, err)
	}
	return nil
}

// issueTokens loads the user with roles and signs a fresh token pair
func (s *AuthService) issueTokens(ctx context.Context, userID uuid.UUID) (*LoginOutput, error) {
	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidToken
	}

	permissions := user.GetPermissions()
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.GetRoleNames(), permissions)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	businesses, err := s.businessRepo.GetUserBusinesses(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Permissions:  permissions,
		Onboarded:    len(businesses) > 0,
	}, nil
}

// availableUsername derives a username from the email's local part and
// appends a short random suffix until it is unused.
func (s *AuthService) availableUsername(ctx context.Context, emailAddr string) (string, error) {
	base, _, _ := strings.Cut(emailAddr, "@")
	if base = utils.Slugify(base); base == "" {
		base = "user"
	}

	candidate := base
	for i := 0; i < 5; i++ {
		taken, err := s.userRepo.UsernameTaken(ctx, candidate, uuid.Nil)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + utils.RandomSuffix(4)
	}
	return base + "-" + uuid.NewString()[:8], nil
}

func (s *AuthService) assignDefaultRole(ctx context.Context, userID uuid.UUID) {
	role, err := s.roleRepo.GetByName(ctx, DefaultRoleName)
	if err != nil || role == nil {
		log.Printf("Warning: default role %q not found: %v", DefaultRoleName, err)
		return
	}
	if err := s.userRepo.AssignRole(ctx, userID, role.ID); err != nil {
		log.Printf("Warning: failed to assign default role to %s: %v", userID, err)
	}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

package request

// PasswordConfirmation is a new password typed twice
type PasswordConfirmation struct {
	Password        string `json:"password" binding:"required,min=8,max=72"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest creates a local account with the "user" role
type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required,max=255"`
	LastName  string `json:"last_name" binding:"required,max=255"`
	Email     string `json:"email" binding:"required,email,max=255"`
	PasswordConfirmation
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest redeems an emailed reset token. Email must belong to
// the account the token was issued for.
type ResetPasswordRequest struct {
	Token string `json:"token" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	PasswordConfirmation
}

// ChangePasswordRequest replaces the password of the signed-in user
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72,nefield=CurrentPassword"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=NewPassword"`
}

// UpdateProfileRequest changes only the fields that are sent
type UpdateProfileRequest struct {
	FirstName string  `json:"first_name" binding:"omitempty,max=255"`
	LastName  string  `json:"last_name" binding:"omitempty,max=255"`
	Username  string  `json:"username" binding:"omitempty,min=3,max=255"`
	Photo     *string `json:"photo" binding:"omitempty,url"`
	Phone     *string `json:"phone" binding:"omitempty,max=50"`
}

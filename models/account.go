package models

// LoginForm is submitted from /login. Nothing is authenticated; the
// submission is only logged.
type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"-" validate:"required,min=6"`
	Remember bool   `json:"remember"`
}

// SignupForm is submitted from /signup.
type SignupForm struct {
	Name            string `json:"name" validate:"required,max=80"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"-" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"-" validate:"required,eqfield=Password"`
}

// ForgotPasswordForm is submitted from /forgot-password.
type ForgotPasswordForm struct {
	Email string `json:"email" validate:"required,email"`
}

// FormResult is what an auth form page shows after a submission.
type FormResult struct {
	OK      bool              `json:"ok"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

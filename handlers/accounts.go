package handlers

import (
	"net/http"
	"strings"

	"cinecontext/api"
	"cinecontext/models"
)

// AuthPage backs the login, signup and forgot-password forms. Passwords
// are never echoed back.
type AuthPage struct {
	Name   string
	Email  string
	Result *models.FormResult
}

func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, "login", view{title: "Sign in", nav: "login", data: AuthPage{}})
}

func (h *Handlers) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, "signup", view{title: "Create account", nav: "login", data: AuthPage{}})
}

func (h *Handlers) ForgotPasswordForm(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, "forgot", view{title: "Reset password", nav: "login", data: AuthPage{}})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, badRequest(err), false)
		return
	}
	form := models.LoginForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
		Remember: r.PostFormValue("remember") != "",
	}
	result, err := h.accounts.Login(form)
	h.finishForm(w, r, "login", "Sign in", AuthPage{Email: form.Email}, result, err)
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, badRequest(err), false)
		return
	}
	form := models.SignupForm{
		Name:            strings.TrimSpace(r.PostFormValue("name")),
		Email:           strings.TrimSpace(r.PostFormValue("email")),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}
	result, err := h.accounts.Signup(form)
	h.finishForm(w, r, "signup", "Create account", AuthPage{Name: form.Name, Email: form.Email}, result, err)
}

func (h *Handlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, badRequest(err), false)
		return
	}
	form := models.ForgotPasswordForm{Email: strings.TrimSpace(r.PostFormValue("email"))}
	result, err := h.accounts.ForgotPassword(form)
	h.finishForm(w, r, "forgot", "Reset password", AuthPage{Email: form.Email}, result, err)
}

func (h *Handlers) finishForm(w http.ResponseWriter, r *http.Request, name, title string, data AuthPage, result models.FormResult, err error) {
	if err != nil {
		h.log.Error("form submission failed", "form", name, "error", err, "request_id", api.GetRequestID(r))
		h.renderPage(w, r, http.StatusInternalServerError, "error", view{
			title: "Error",
			data:  ErrorPage{Status: http.StatusInternalServerError, Message: "Something went wrong."},
		})
		return
	}
	status := http.StatusOK
	if !result.OK {
		status = http.StatusUnprocessableEntity
	}
	data.Result = &result
	h.renderPage(w, r, status, name, view{title: title, nav: "login", data: data})
}

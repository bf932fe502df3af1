package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/apperror"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/domain"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/middleware"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/session"
	"go.uber.org/zap"
)

func (h *Handler) SignupForm(w http.ResponseWriter, r *http.Request) error {
	h.renderer.Page(w, r, http.StatusOK, "users/signup.html", pageData{Title: "Sign Up"})
	return nil
}

// Signup registers and logs in. Failures are flashed back to the form.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return apperror.BadRequest("Invalid form data")
	}
	form, err := parseSignupForm(r)
	if err != nil {
		_, msg := apperror.StatusAndMessage(err)
		flashRedirect(w, r, session.FlashError, msg, "/signup")
		return nil
	}

	user, err := h.users.Register(r.Context(), form.Username, form.Email, form.Password)
	switch {
	case errors.Is(err, domain.ErrDuplicateUsername):
		flashRedirect(w, r, session.FlashError, "A user with the given username is already registered", "/signup")
		return nil
	case errors.Is(err, domain.ErrInvalidInput):
		flashRedirect(w, r, session.FlashError, err.Error(), "/signup")
		return nil
	case err != nil:
		return internal(err)
	}
	h.metrics.Signup()

	session.FromContext(r.Context()).Login(user.ID)
	flashRedirect(w, r, session.FlashSuccess, "Welcome to Wanderlust!", "/listings")
	return nil
}

func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) error {
	h.renderer.Page(w, r, http.StatusOK, "users/login.html", pageData{Title: "Login"})
	return nil
}

// Login checks credentials and returns the visitor to the page that sent
// them to login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return apperror.BadRequest("Invalid form data")
	}
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	user, err := h.users.Authenticate(r.Context(), username, password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		h.metrics.LoginAttempt("failure")
		flashRedirect(w, r, session.FlashError, "Password or username is incorrect", "/login")
		return nil
	}
	if err != nil {
		return internal(err)
	}
	h.metrics.LoginAttempt("success")

	st := session.FromContext(r.Context())
	target := middleware.RedirectURL(r.Context())
	st.PopRedirectURL()
	if !safeRedirect(target) {
		target = "/listings"
	}
	st.Login(user.ID)
	h.logger.Info("User logged in", zap.String("user_id", user.ID))

	flashRedirect(w, r, session.FlashSuccess, "Welcome back to Wanderlust!", target)
	return nil
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) error {
	session.FromContext(r.Context()).Logout()
	flashRedirect(w, r, session.FlashSuccess, "Logged out successfully!", "/listings")
	return nil
}

// safeRedirect accepts only local absolute paths, and never the logout route.
func safeRedirect(target string) bool {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return false
	}
	path, _, _ := strings.Cut(target, "?")
	return strings.TrimSuffix(path, "/") != "/logout"
}

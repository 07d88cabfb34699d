package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/amalbenali/glowshop/app/configs"
	"github.com/amalbenali/glowshop/app/helpers"
	"github.com/amalbenali/glowshop/app/models"
	"github.com/amalbenali/glowshop/app/repositories"
	"github.com/amalbenali/glowshop/app/services"
	"github.com/amalbenali/glowshop/app/utils/sessions"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/unrolled/render"
	"golang.org/x/crypto/bcrypt"
)

const passwordResetExpiryMinutes = 30

type AuthHandler struct {
	render       *render.Render
	userRepo     repositories.UserRepositoryImpl
	sessionStore sessions.SessionStore
	mailer       *services.Mailer
	validator    *validator.Validate
}

func NewAuthHandler(
	r *render.Render,
	userRepo repositories.UserRepositoryImpl,
	sessionStore sessions.SessionStore,
	mailer *services.Mailer,
	v *validator.Validate,
) *AuthHandler {
	return &AuthHandler{
		render:       r,
		userRepo:     userRepo,
		sessionStore: sessionStore,
		mailer:       mailer,
		validator:    v,
	}
}

type registerRequest struct {
	FirstName string `json:"first_name" validate:"required,min=2,max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"max=20"`
	Password  string `json:"password" validate:"required,min=6"`
}

// Register handles POST /api/account/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderBadRequest(h.render, w, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		renderServiceError(h.render, w, validationErrorsToService(err))
		return
	}

	existing, err := h.userRepo.FindByEmail(r.Context(), req.Email)
	if err != nil {
		renderServiceError(h.render, w, err)
		return
	}
	if existing != nil {
		renderServiceError(h.render, w, services.NewValidationError().Add("email", "already registered"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		renderServiceError(h.render, w, err)
		return
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  string(hashed),
		Role:      models.RoleCustomer,
	}
	if err := h.userRepo.Create(r.Context(), user); err != nil {
		renderServiceError(h.render, w, err)
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		log.Printf("Register: failed to open session for user %s: %v", user.ID, err)
	}
	_ = h.render.JSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/account/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderBadRequest(h.render, w, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		renderServiceError(h.render, w, validationErrorsToService(err))
		return
	}

	user, err := h.userRepo.FindByEmail(r.Context(), req.Email)
	if err != nil {
		renderServiceError(h.render, w, err)
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		_ = h.render.JSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid email or password"})
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		renderServiceError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, user)
}

// Logout handles POST /api/account/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		renderServiceError(h.render, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Profile handles GET /api/account/profile.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := helpers.GetUserIDFromContext(r.Context())

	user, err := h.userRepo.FindByID(r.Context(), userID)
	if err != nil {
		renderServiceError(h.render, w, err)
		return
	}
	if user == nil {
		renderServiceError(h.render, w, services.ErrNotFound)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, user)
}

// RequestPasswordReset handles POST /api/account/password-reset. It always
// answers 200 so the endpoint cannot be used to probe which emails exist.
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	okResponse := map[string]string{"detail": "If an account exists, an email has been sent."}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		_ = h.render.JSON(w, http.StatusOK, okResponse)
		return
	}

	user, err := h.userRepo.FindByEmail(r.Context(), req.Email)
	if err != nil || user == nil {
		_ = h.render.JSON(w, http.StatusOK, okResponse)
		return
	}

	token := uuid.NewString()
	expires := time.Now().Add(passwordResetExpiryMinutes * time.Minute)
	if err := h.userRepo.SetResetToken(r.Context(), user.ID, token, expires); err != nil {
		log.Printf("RequestPasswordReset: failed to store token for user %s: %v", user.ID, err)
		_ = h.render.JSON(w, http.StatusOK, okResponse)
		return
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", configs.LoadENV.FrontendURL, token)
	body := services.BuildPasswordResetEmailBody(user.FirstName, resetURL, passwordResetExpiryMinutes)
	if err := h.mailer.SendHTMLEmail(user.Email, "Réinitialisation de votre mot de passe", body); err != nil {
		log.Printf("RequestPasswordReset: failed to send email to %s: %v", user.Email, err)
	}

	_ = h.render.JSON(w, http.StatusOK, okResponse)
}

type confirmResetRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// ConfirmPasswordReset handles POST /api/account/password-reset/confirm.
func (h *AuthHandler) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req confirmResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderBadRequest(h.render, w, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		renderServiceError(h.render, w, validationErrorsToService(err))
		return
	}

	user, err := h.userRepo.FindByResetToken(r.Context(), req.Token)
	if err != nil {
		renderServiceError(h.render, w, err)
		return
	}
	if user == nil || user.PasswordResetExpires == nil || user.PasswordResetExpires.Before(time.Now()) {
		renderBadRequest(h.render, w, "reset link is invalid or has expired")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		renderServiceError(h.render, w, err)
		return
	}
	if err := h.userRepo.UpdatePassword(r.Context(), user.ID, string(hashed)); err != nil {
		renderServiceError(h.render, w, err)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]string{"detail": "Password updated successfully."})
}

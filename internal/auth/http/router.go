package http

import (
	"net/http"
	"time"

	"github.com/rakhimovb/staylist/internal/auth/service"
	commonhttp "github.com/rakhimovb/staylist/internal/common/http"
	"github.com/rakhimovb/staylist/internal/common/logger"
	"github.com/rakhimovb/staylist/internal/common/tokenauth"
)

type signupRequest struct {
	User struct {
		Email                string `json:"email"`
		Password             string `json:"password"`
		PasswordConfirmation string `json:"password_confirmation"`
	} `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	ID                  string `json:"id"`
	Email               string `json:"email"`
	AuthenticationToken string `json:"authentication_token"`
}

type sessionResponse struct {
	User userPayload `json:"user"`
}

type Handler struct {
	auth *service.AuthService
	log  *logger.Logger
}

// NewHandler mounts the session endpoints. Signup and login are exempt from
// the token gate (they establish the token); logout sits behind it.
func NewHandler(auth *service.AuthService, log *logger.Logger) http.Handler {
	h := &Handler{auth: auth, log: log}

	gate := tokenauth.Middleware(auth, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/signup", commonhttp.RequireMethod(http.MethodPost)(commonhttp.WithTimeout(5*time.Second)(h.signup)))
	mux.HandleFunc("/login", commonhttp.RequireMethod(http.MethodPost)(commonhttp.WithTimeout(5*time.Second)(h.login)))
	mux.Handle("/logout", gate(http.HandlerFunc(commonhttp.RequireMethod(http.MethodDelete)(commonhttp.WithTimeout(5*time.Second)(h.logout)))))
	return mux
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("signup failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	result, err := h.auth.Signup(r.Context(), service.SignupInput{
		Email:                req.User.Email,
		Password:             req.User.Password,
		PasswordConfirmation: req.User.PasswordConfirmation,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, sessionResponse{User: userPayload{
		ID:                  result.ID,
		Email:               result.Email,
		AuthenticationToken: result.Token,
	}})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("login failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	result, err := h.auth.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, sessionResponse{User: userPayload{
		ID:                  result.ID,
		Email:               result.Email,
		AuthenticationToken: result.Token,
	}})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	user, ok := tokenauth.CurrentUser(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.auth.Logout(r.Context(), user); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteMessage(w, http.StatusOK, "Logged out successfully")
}

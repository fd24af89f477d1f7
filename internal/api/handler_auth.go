package api

import (
	"net/http"
	"time"

	"homeboard/internal/authz"
	"homeboard/internal/domain"
)

type signupBody struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Password   string `json:"password"`
	Role       string `json:"role,omitempty"`
	ProductKey string `json:"product_key,omitempty"`
}

type signinBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var body signupBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	token, user, err := h.users.Signup(r.Context(), &domain.SignupRequest{
		Name:       body.Name,
		Email:      body.Email,
		Phone:      body.Phone,
		Password:   body.Password,
		Role:       domain.UserRole(body.Role),
		ProductKey: body.ProductKey,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: toUserResponse(user)})
}

func (h *Handler) signin(w http.ResponseWriter, r *http.Request) {
	var body signinBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	token, user, err := h.users.Signin(r.Context(), &domain.SigninRequest{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: toUserResponse(user)})
}

func (h *Handler) whoAmI(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.authorize(w, r, authz.OpWhoAmI)
	if !ok {
		return
	}

	user, err := h.users.GetByID(r.Context(), principal.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

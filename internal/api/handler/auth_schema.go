package handler

import "time"

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token         string    `json:"token"`
	Roles         []string  `json:"roles"`
	SessionExpiry time.Time `json:"session_expiry"`
	CSRFToken     string    `json:"csrf_token"`
}

type refreshResponse struct {
	Token         string    `json:"token"`
	SessionExpiry time.Time `json:"session_expiry"`
}

type registerRequest struct {
	Username      string `json:"username"       validate:"required"`
	Password      string `json:"password"       validate:"required"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
	Role          string `json:"role"           validate:"required,oneof=student employer university_admin mentor admin super_admin"`
	AssociationID string `json:"association_id,omitempty"`
}

type csrfResponse struct {
	CSRFToken string `json:"csrf_token"`
}

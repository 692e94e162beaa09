package user

import (
	"errors"
	"net/http"
	"strings"

	"bookshelf/internal/httpx"
)

type HTTPHandler struct {
	service *Service
	errs    *httpx.ErrorTranslator
}

func NewHTTPHandler(service *Service, errs *httpx.ErrorTranslator) *HTTPHandler {
	return &HTTPHandler{service: service, errs: errs}
}

type registerReq struct {
	Username string `json:"username" validate:"notblank,max=50"`
	Password string `json:"password" validate:"required,password_policy"`
}

type loginReq struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

// Register handles POST /api/auth/register
func (h *HTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if !httpx.BindJSON(w, r, &req) {
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONMessage(w, http.StatusBadRequest, validationErrors[0].Message)
		return
	}

	u, err := h.service.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyExists):
			httpx.JSONMessage(w, http.StatusBadRequest, "username taken")
			return
		case errors.Is(err, ErrPasswordTooLong):
			httpx.JSONMessage(w, http.StatusBadRequest, "password is too long")
			return
		}
		h.errs.Handle(w, r, err)
		return
	}

	httpx.JSONOK(w, map[string]any{"user": u})
}

// Login handles POST /api/auth/login
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if !httpx.BindJSON(w, r, &req) {
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONMessage(w, http.StatusBadRequest, validationErrors[0].Message)
		return
	}

	u, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httpx.JSONMessage(w, http.StatusBadRequest, "username or password is invalid")
			return
		}
		h.errs.Handle(w, r, err)
		return
	}

	httpx.JSONOK(w, map[string]any{"user": u})
}

// Me handles GET /api/auth/me. The response carries the token the request was
// authenticated with rather than a new one.
func (h *HTTPHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.GetByID(r.Context(), httpx.UserIDFrom(r))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.errs.Handle(w, r, httpx.Unauthorized(httpx.CodeInvalidToken, "user no longer exists"))
			return
		}
		h.errs.Handle(w, r, err)
		return
	}

	httpx.JSONOK(w, map[string]any{"user": AuthUser{
		ID:       u.ID,
		Username: u.Username,
		Token:    httpx.TokenFrom(r),
	}})
}

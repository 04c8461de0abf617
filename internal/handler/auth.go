package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/trendaura-auth/internal/logging"
	"github.com/iliyamo/trendaura-auth/internal/model"
	"github.com/iliyamo/trendaura-auth/internal/repository"
	"github.com/iliyamo/trendaura-auth/internal/service"
	"github.com/iliyamo/trendaura-auth/internal/utils"
)

// Accounts is the account service as seen by the HTTP layer.
type Accounts interface {
	Register(ctx context.Context, in service.RegisterInput) (service.AuthResult, error)
	Login(ctx context.Context, email, password string) (service.AuthResult, error)
	GetSelf(ctx context.Context, id utils.Identity) (model.ProfileView, error)
	GetProfile(ctx context.Context, userID uint64) (model.ProfileView, error)
	UpdateProfile(ctx context.Context, id utils.Identity, upd model.ProfileUpdate, picture *service.Upload) (model.ProfileView, error)
	VerifyEmail(ctx context.Context, email, code string) error
}

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	accounts Accounts
	log      logging.Logger
	timeout  time.Duration
}

// NewAuthHandler wires the registration, login, self and verification
// handlers to accounts.
func NewAuthHandler(accounts Accounts, log logging.Logger, timeout time.Duration) *AuthHandler {
	return &AuthHandler{accounts: accounts, log: log, timeout: timeout}
}

type authResp struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	UserID  uint64 `json:"userId"`
}

// Register creates the account and returns a session token immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	req.normalize()
	if err := req.Validate(); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	res, err := h.accounts.Register(ctx, service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return fail(c, http.StatusBadRequest, "Email already in use")
		}
		return serverError(c, h.log, "register failed", err)
	}
	return c.JSON(http.StatusCreated, authResp{Success: true, Token: res.Token.Token, UserID: res.UserID})
}

// Login verifies credentials. Unknown email and wrong password produce the
// same response.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	res, err := h.accounts.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return fail(c, http.StatusUnauthorized, "Invalid credentials")
		}
		return serverError(c, h.log, "login failed", err)
	}
	return c.JSON(http.StatusOK, authResp{Success: true, Token: res.Token.Token, UserID: res.UserID})
}

// Me returns the caller's own account and profile.
func (h *AuthHandler) Me(c echo.Context, id utils.Identity) error {
	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	v, err := h.accounts.GetSelf(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "User not found")
		}
		return serverError(c, h.log, "get self failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": v})
}

// VerifyEmail consumes an emailed verification code.
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	var req verifyEmailReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	switch err := h.accounts.VerifyEmail(ctx, req.Email, req.Code); {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Email verified"})
	case errors.Is(err, service.ErrInvalidCode):
		return fail(c, http.StatusBadRequest, "Invalid or expired code")
	case errors.Is(err, service.ErrVerificationUnavailable):
		return fail(c, http.StatusServiceUnavailable, "Email verification is unavailable")
	default:
		return serverError(c, h.log, "verify email failed", err)
	}
}

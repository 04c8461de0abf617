package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/trendaura-auth/internal/logging"
	"github.com/iliyamo/trendaura-auth/internal/model"
	"github.com/iliyamo/trendaura-auth/internal/repository"
	"github.com/iliyamo/trendaura-auth/internal/service"
	"github.com/iliyamo/trendaura-auth/internal/utils"
)

// errBadUpload carries a client-facing reason for rejecting an upload.
type errBadUpload struct{ msg string }

func (e errBadUpload) Error() string { return e.msg }

// ProfileHandler serves the public profile view and profile updates.
type ProfileHandler struct {
	accounts Accounts
	log      logging.Logger
	timeout  time.Duration
	maxBytes int64
}

// NewProfileHandler wires the profile handlers. timeout bounds the storage
// and database work of a single request; maxUploadBytes caps the picture.
func NewProfileHandler(accounts Accounts, log logging.Logger, timeout time.Duration, maxUploadBytes int64) *ProfileHandler {
	return &ProfileHandler{accounts: accounts, log: log, timeout: timeout, maxBytes: maxUploadBytes}
}

// GetProfile returns any user's profile. An id that is not a number cannot
// name a profile and is answered like a missing one.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil || userID == 0 {
		return fail(c, http.StatusNotFound, "Profile not found")
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	v, err := h.accounts.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Profile not found")
		}
		return serverError(c, h.log, "get profile failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": v})
}

// UpdateProfile accepts multipart form data with an optional
// profile_picture file and optional bio, location and website fields.
// Fields that are absent keep their stored value; an empty field clears it.
func (h *ProfileHandler) UpdateProfile(c echo.Context, id utils.Identity) error {
	picture, err := readImage(c, "profile_picture", h.maxBytes)
	if err != nil {
		var bad errBadUpload
		if errors.As(err, &bad) {
			return fail(c, http.StatusBadRequest, bad.msg)
		}
		return serverError(c, h.log, "read upload failed", err)
	}

	form, err := readProfileForm(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid form data")
	}
	if err := form.Validate(); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	v, err := h.accounts.UpdateProfile(ctx, id, model.ProfileUpdate{
		Bio:      form.Bio,
		Location: form.Location,
		Website:  form.Website,
	}, picture)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "User not found")
		}
		return serverError(c, h.log, "update profile failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": v})
}

func readProfileForm(c echo.Context) (profileForm, error) {
	if _, err := c.FormParams(); err != nil {
		return profileForm{}, err
	}
	// Body fields only; query parameters are not profile input.
	params := c.Request().PostForm
	field := func(name string) *string {
		vals, ok := params[name]
		if !ok || len(vals) == 0 {
			return nil
		}
		s := strings.TrimSpace(vals[0])
		return &s
	}
	return profileForm{Bio: field("bio"), Location: field("location"), Website: field("website")}, nil
}

// readImage returns the uploaded file named field, or nil when none was
// sent. The content is sniffed; anything that is not an image is refused.
func readImage(c echo.Context, field string, maxBytes int64) (*service.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, errBadUpload{"Invalid form data"}
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return nil, errBadUpload{"File is too large"}
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	limit := maxBytes
	if limit <= 0 {
		limit = 5 << 20
	}
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errBadUpload{"File is too large"}
	}
	if len(data) == 0 || !strings.HasPrefix(http.DetectContentType(data), "image/") {
		return nil, errBadUpload{"Only image files are allowed"}
	}
	return &service.Upload{Name: fh.Filename, Data: data}, nil
}

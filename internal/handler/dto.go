package handler

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// bcrypt ignores input beyond 72 bytes, so longer passwords are refused.
const maxPasswordBytes = 72

type registerReq struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (r *registerReq) normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
}

// Validate checks the registration payload.
func (r registerReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 0), validation.By(maxBytes(maxPasswordBytes))),
	)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type verifyEmailReq struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (r verifyEmailReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Code, validation.Required, validation.Length(6, 6), is.Digit),
	)
}

type sendVerificationReq struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	Code      string `json:"code"`
}

func (r sendVerificationReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.FirstName, validation.Length(0, 50)),
		validation.Field(&r.Code, validation.Required, validation.Length(1, 12)),
	)
}

type sendLoginReq struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
}

func (r sendLoginReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// profileForm holds the optional text fields of a profile update. A nil
// field was not sent.
type profileForm struct {
	Bio      *string
	Location *string
	Website  *string
}

func (f profileForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Bio, validation.Length(0, 2000)),
		validation.Field(&f.Location, validation.Length(0, 100)),
		validation.Field(&f.Website, validation.Length(0, 255), is.URL),
	)
}

func maxBytes(n int) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if len(s) > n {
			return errors.New("is too long")
		}
		return nil
	}
}

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/samber/oops"

	"github.com/iliyamo/trendaura-auth/internal/logging"
	"github.com/iliyamo/trendaura-auth/internal/model"
	"github.com/iliyamo/trendaura-auth/internal/repository"
	"github.com/iliyamo/trendaura-auth/internal/storage"
	"github.com/iliyamo/trendaura-auth/internal/utils"
)

// UserStore is the subset of the credential store the service reads.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	MarkEmailVerified(ctx context.Context, id uint64) error
}

// AccountCreator creates an account together with its empty profile.
type AccountCreator interface {
	Register(ctx context.Context, u *model.User) (uint64, error)
}

// ProfileStore reads and writes profile rows.
type ProfileStore interface {
	FindView(ctx context.Context, userID uint64) (model.ProfileView, error)
	Upsert(ctx context.Context, userID uint64, upd model.ProfileUpdate) (model.Profile, error)
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(accountID uint64, role string) (utils.AccessToken, error)
}

// VerificationCodes stores pending email verification codes.
type VerificationCodes interface {
	Save(ctx context.Context, email, code string) error
	Consume(ctx context.Context, email, code string) (bool, error)
}

// Notifications is the fire-and-forget email side channel.
type Notifications interface {
	VerificationEmail(to, firstName, code string)
	LoginNotification(to, firstName string)
}

// AccountDeps wires an AccountService. Codes may be nil, which disables
// email verification.
type AccountDeps struct {
	Users      UserStore
	Registrar  AccountCreator
	Profiles   ProfileStore
	Tokens     TokenIssuer
	Assets     storage.Store
	Codes      VerificationCodes
	Notify     Notifications
	Log        logging.Logger
	BcryptCost int
}

// AccountService implements registration, login and profile maintenance.
type AccountService struct {
	AccountDeps
	dummyHash string // compared against on unknown-email logins
}

// NewAccountService builds the service from its collaborators. A nil logger
// is replaced with a discarding one. The dummy login hash is built here at
// the configured bcrypt cost so the first failed login is not slower.
func NewAccountService(d AccountDeps) *AccountService {
	if d.Log == nil {
		d.Log = logging.Discard()
	}
	return &AccountService{AccountDeps: d, dummyHash: utils.DummyHash(d.BcryptCost)}
}

// RegisterInput carries the registration form.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// AuthResult is returned by a successful register or login.
type AuthResult struct {
	Token  utils.AccessToken
	UserID uint64
}

// Upload is an asset received from a client.
type Upload struct {
	Name string
	Data []byte
}

// Register creates an account and its empty profile, issues a token and
// sends the verification email.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	email := strings.TrimSpace(in.Email)
	errb := oops.With("email", email)

	_, err := s.Users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return AuthResult{}, errb.Code("AUTH_EMAIL_EXISTS").Wrap(repository.ErrEmailExists)
	case !errors.Is(err, repository.ErrNotFound):
		return AuthResult{}, errb.Code("AUTH_LOOKUP_FAILED").Wrap(err)
	}

	hash, err := utils.HashPassword(in.Password, s.BcryptCost)
	if err != nil {
		return AuthResult{}, errb.Code("AUTH_HASH_FAILED").Wrap(err)
	}

	u := &model.User{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}
	id, err := s.Registrar.Register(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return AuthResult{}, errb.Code("AUTH_EMAIL_EXISTS").Wrap(err)
		}
		return AuthResult{}, errb.Code("AUTH_REGISTER_FAILED").Wrap(err)
	}

	tok, err := s.Tokens.Issue(id, u.Role)
	if err != nil {
		return AuthResult{}, errb.Code("AUTH_TOKEN_FAILED").With("user_id", id).Wrap(err)
	}

	s.sendVerification(ctx, email, u.FirstName)
	return AuthResult{Token: tok, UserID: id}, nil
}

func (s *AccountService) sendVerification(ctx context.Context, email, firstName string) {
	if s.Notify == nil {
		return
	}
	code, err := newVerificationCode()
	if err != nil {
		s.Log.Warn(ctx, "generate verification code failed", "error", err)
		return
	}
	if s.Codes != nil {
		if err := s.Codes.Save(ctx, email, code); err != nil {
			s.Log.Warn(ctx, "store verification code failed", "email", email, "error", err)
		}
	}
	s.Notify.VerificationEmail(email, firstName, code)
}

// Login checks the credentials and issues a token. An unknown email and a
// wrong password both yield ErrInvalidCredentials after comparable work.
func (s *AccountService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.TrimSpace(email)
	errb := oops.With("email", email)

	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_, _ = utils.VerifyPassword(s.dummyHash, password)
			return AuthResult{}, errb.Code("AUTH_LOGIN_FAILED").Wrap(ErrInvalidCredentials)
		}
		return AuthResult{}, errb.Code("AUTH_LOOKUP_FAILED").Wrap(err)
	}

	ok, err := utils.VerifyPassword(u.PasswordHash, password)
	if err != nil {
		return AuthResult{}, errb.Code("AUTH_INVALID_HASH").With("user_id", u.ID).Wrap(err)
	}
	if !ok {
		return AuthResult{}, errb.Code("AUTH_LOGIN_FAILED").Wrap(ErrInvalidCredentials)
	}

	tok, err := s.Tokens.Issue(u.ID, u.Role)
	if err != nil {
		return AuthResult{}, errb.Code("AUTH_TOKEN_FAILED").With("user_id", u.ID).Wrap(err)
	}
	if s.Notify != nil {
		s.Notify.LoginNotification(u.Email, u.FirstName)
	}
	return AuthResult{Token: tok, UserID: u.ID}, nil
}

// GetSelf returns the joined account and profile for the caller.
func (s *AccountService) GetSelf(ctx context.Context, id utils.Identity) (model.ProfileView, error) {
	return s.GetProfile(ctx, id.AccountID)
}

// GetProfile returns the public view of any account's profile.
func (s *AccountService) GetProfile(ctx context.Context, userID uint64) (model.ProfileView, error) {
	v, err := s.Profiles.FindView(ctx, userID)
	if err != nil {
		return model.ProfileView{}, oops.Code("PROFILE_LOOKUP_FAILED").With("user_id", userID).Wrap(err)
	}
	return v, nil
}

// UpdateProfile applies the supplied fields and, when picture is given,
// replaces the profile picture. The new asset is stored first; if the
// record update fails it is removed again, otherwise the previous asset is
// removed. Asset deletion failures are logged, not returned.
func (s *AccountService) UpdateProfile(ctx context.Context, id utils.Identity, upd model.ProfileUpdate, picture *Upload) (model.ProfileView, error) {
	errb := oops.With("user_id", id.AccountID)

	var newRef string
	if picture != nil {
		ref, err := s.Assets.Store(ctx, picture.Data, picture.Name)
		if err != nil {
			return model.ProfileView{}, errb.Code("PROFILE_ASSET_STORE_FAILED").Wrap(err)
		}
		newRef = ref
		upd.Picture = &newRef
	}

	if !upd.Empty() {
		prev, err := s.Profiles.Upsert(ctx, id.AccountID, upd)
		if err != nil {
			if newRef != "" {
				s.deleteAsset(ctx, newRef)
			}
			return model.ProfileView{}, errb.Code("PROFILE_UPDATE_FAILED").Wrap(err)
		}
		if newRef != "" && prev.Picture != nil && *prev.Picture != "" && *prev.Picture != newRef {
			s.deleteAsset(ctx, *prev.Picture)
		}
	}

	v, err := s.Profiles.FindView(ctx, id.AccountID)
	if err != nil {
		return model.ProfileView{}, errb.Code("PROFILE_LOOKUP_FAILED").Wrap(err)
	}
	return v, nil
}

func (s *AccountService) deleteAsset(ctx context.Context, ref string) {
	// The request context may already be done; cleanup should still run.
	if err := s.Assets.Delete(context.WithoutCancel(ctx), ref); err != nil {
		s.Log.Warn(ctx, "delete asset failed", "ref", ref, "error", err)
	}
}

// VerifyEmail consumes a pending code for email and marks the account
// verified.
func (s *AccountService) VerifyEmail(ctx context.Context, email, code string) error {
	email = strings.TrimSpace(email)
	errb := oops.With("email", email)
	if s.Codes == nil {
		return errb.Code("VERIFY_UNAVAILABLE").Wrap(ErrVerificationUnavailable)
	}

	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errb.Code("VERIFY_INVALID_CODE").Wrap(ErrInvalidCode)
		}
		return errb.Code("AUTH_LOOKUP_FAILED").Wrap(err)
	}

	ok, err := s.Codes.Consume(ctx, email, strings.TrimSpace(code))
	if err != nil {
		return errb.Code("VERIFY_STORE_FAILED").Wrap(err)
	}
	if !ok {
		return errb.Code("VERIFY_INVALID_CODE").Wrap(ErrInvalidCode)
	}
	if err := s.Users.MarkEmailVerified(ctx, u.ID); err != nil {
		return errb.Code("VERIFY_MARK_FAILED").With("user_id", u.ID).Wrap(err)
	}
	return nil
}

// Package session issues, clears and resolves the identity cookie that keeps
// a browser logged in.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"dinedash/models"
	"dinedash/repository"
	"dinedash/validation"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultCookieName = "dinedash_session"
	DefaultTTL        = 7 * 24 * time.Hour
)

// Settings controls the cookie the Issuer writes.
type Settings struct {
	CookieName string
	TTL        time.Duration
	Secure     bool // HTTPS-only; set in production
	BcryptCost int
}

// Issuer checks credentials against the user store and manages the session
// cookie. The cookie is never trusted on its own: ResolveSession re-reads
// the user record on every call.
type Issuer struct {
	users    repository.UserRepositoryI
	codec    Codec
	settings Settings

	dummyOnce sync.Once
	dummyHash []byte
}

func NewIssuer(users repository.UserRepositoryI, codec Codec, settings Settings) *Issuer {
	if settings.CookieName == "" {
		settings.CookieName = DefaultCookieName
	}
	if settings.TTL <= 0 {
		settings.TTL = DefaultTTL
	}
	if settings.BcryptCost == 0 {
		settings.BcryptCost = bcrypt.DefaultCost
	}
	return &Issuer{users: users, codec: codec, settings: settings}
}

// CookieName is the name of the session cookie.
func (i *Issuer) CookieName() string {
	return i.settings.CookieName
}

// Authenticate returns the identity for a matching email and password.
// Emails are matched exactly.
func (i *Issuer) Authenticate(ctx context.Context, email, password string) (*models.Identity, error) {
	u, err := i.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: looking up user: %w", ErrUnexpected, err)
	}
	if u == nil {
		// keep the response time close to the wrong-password path
		_ = bcrypt.CompareHashAndPassword(i.fallbackHash(), []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	id := u.Identity()
	return &id, nil
}

// Register creates a manager account.
func (i *Issuer) Register(ctx context.Context, name, email, password string) (*models.Identity, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), i.settings.BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, validation.Errors{"password": "Password must be at most 72 bytes."}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: hashing password: %w", ErrUnexpected, err)
	}
	u, err := i.users.Create(ctx, &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleManager,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrDuplicateAccount
	}
	if err != nil {
		return nil, fmt.Errorf("%w: creating user: %w", ErrUnexpected, err)
	}
	id := u.Identity()
	return &id, nil
}

// Login authenticates and, on success, sets the session cookie.
func (i *Issuer) Login(c *gin.Context, email, password string) (*models.Identity, error) {
	id, err := i.Authenticate(c.Request.Context(), email, password)
	if err != nil {
		return nil, err
	}
	if err := i.IssueSession(c, *id); err != nil {
		return nil, err
	}
	return id, nil
}

// Signup registers and, on success, sets the session cookie.
func (i *Issuer) Signup(c *gin.Context, name, email, password string) (*models.Identity, error) {
	id, err := i.Register(c.Request.Context(), name, email, password)
	if err != nil {
		return nil, err
	}
	if err := i.IssueSession(c, *id); err != nil {
		return nil, err
	}
	return id, nil
}

// IssueSession writes the session cookie for id.
func (i *Issuer) IssueSession(c *gin.Context, id models.Identity) error {
	token, err := i.codec.Encode(id)
	if err != nil {
		return fmt.Errorf("%w: encoding session: %w", ErrUnexpected, err)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(i.settings.CookieName, token, int(i.settings.TTL/time.Second), "/", "", i.settings.Secure, true)
	return nil
}

// ClearSession expires the session cookie. It is safe to call without one.
func (i *Issuer) ClearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(i.settings.CookieName, "", -1, "/", "", i.settings.Secure, true)
}

// ResolveSession returns the identity behind the request's cookie, or nil
// when there is no usable session. A cookie that cannot be decoded, or whose
// user no longer exists, is cleared. A cookie whose email, name or role
// disagrees with the stored record is rewritten from the record.
func (i *Issuer) ResolveSession(c *gin.Context) (*models.Identity, error) {
	raw, err := c.Cookie(i.settings.CookieName)
	if err != nil || raw == "" {
		return nil, nil
	}
	claimed, err := i.codec.Decode(raw)
	if err != nil {
		i.ClearSession(c)
		return nil, nil
	}
	u, err := i.users.GetByID(c.Request.Context(), claimed.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading user %d: %w", ErrUnexpected, claimed.ID, err)
	}
	if u == nil {
		i.ClearSession(c)
		return nil, nil
	}
	stored := u.Identity()
	if stored != *claimed {
		if err := i.IssueSession(c, stored); err != nil {
			return nil, err
		}
	}
	return &stored, nil
}

func (i *Issuer) fallbackHash() []byte {
	i.dummyOnce.Do(func() {
		// the error only occurs for passwords over 72 bytes
		i.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dinedash-no-such-user"), i.settings.BcryptCost)
	})
	return i.dummyHash
}

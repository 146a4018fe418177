// Package session manages the provider login state: the secret token lives in
// the system keyring, everything else in a persisted session document.
package session

import (
	"time"

	"github.com/metafates/gache"
	"github.com/primeflix-cli/primeflix/constant"
	"github.com/primeflix-cli/primeflix/filesystem"
	"github.com/primeflix-cli/primeflix/where"
	"github.com/samber/mo"
	"github.com/zalando/go-keyring"
)

const keyringUser = "provider-token"

// Profile is the non-secret part of the login state.
type Profile struct {
	Email       string    `json:"email"`
	Region      string    `json:"region"`
	DeviceID    string    `json:"device_id"`
	LastLoginAt time.Time `json:"last_login_at"`
}

var cacher = gache.New[*Profile](
	&gache.Options{
		Path:       where.Session(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// SetToken persists the provider auth token to the system keyring.
func SetToken(token string) error {
	return keyring.Set(constant.Primeflix, keyringUser, token)
}

// Token retrieves the provider auth token from the system keyring.
func Token() (string, error) {
	return keyring.Get(constant.Primeflix, keyringUser)
}

// DeleteToken removes the provider auth token from the system keyring.
func DeleteToken() error {
	return keyring.Delete(constant.Primeflix, keyringUser)
}

// Save persists the profile document, stamping the login time.
func Save(profile Profile) error {
	profile.LastLoginAt = time.Now()
	return cacher.Set(&profile)
}

// Get returns the persisted profile, or None when nobody ever logged in.
func Get() mo.Option[Profile] {
	cached, expired, err := cacher.Get()
	if err != nil || expired || cached == nil {
		return mo.None[Profile]()
	}
	return mo.Some(*cached)
}

// LoggedIn reports whether both halves of the login state are present: a
// keyring token and a session document.
func LoggedIn() bool {
	if _, err := Token(); err != nil {
		return false
	}
	return Get().IsPresent()
}

// Clear removes both the token and the session document.
func Clear() error {
	// A missing keyring entry is not a failure here.
	_ = DeleteToken()
	return cacher.Set(nil)
}

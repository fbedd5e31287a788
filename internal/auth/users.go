package auth

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ErrInvalidCredentials is returned by Authenticate for any mismatch.
var ErrInvalidCredentials = errors.New("invalid username or password")

// InvalidCredentialsMessage is shown on the login form after a failed attempt.
const InvalidCredentialsMessage = "Invalid username or password."

// User is the identity shown in the sidebar. It carries no permissions.
type User struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

var (
	// Anonymous is every visitor before login and after logout.
	Anonymous = User{Name: "Guest User", Role: "Public Access"}
	// Guest is the "continue as guest" login.
	Guest = User{Name: "Guest", Role: "Public Access"}
	// Admin is the demo administrator.
	Admin = User{Name: "Admin", Role: "System Administrator"}
)

// The demo credentials. This is a stub, not authentication.
const (
	adminUsername = "admin"
	adminPassword = "12345"
)

// Authenticate checks the demo credentials. The username is trimmed and
// compared case-insensitively; the password is trimmed.
func Authenticate(username, password string) (User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	password = strings.TrimSpace(password)
	if username == adminUsername && password == adminPassword {
		return Admin, nil
	}
	return User{}, ErrInvalidCredentials
}

// LoggedIn reports whether the user has left the anonymous state.
func (u User) LoggedIn() bool {
	return u != Anonymous
}

// CanLogout reports whether the logout control is shown. Guests have no
// logout button.
func (u User) CanLogout() bool {
	return u.LoggedIn() && u != Guest
}

// Initial is the avatar letter.
func (u User) Initial() string {
	r, _ := utf8.DecodeRuneInString(u.Name)
	if r == utf8.RuneError {
		return "G"
	}
	return strings.ToUpper(string(r))
}

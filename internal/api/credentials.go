package api

import "go.uber.org/zap/zapcore"

// Credentials is the immutable (user, token) pair used for HTTP Basic
// authentication. The token is never rendered by String, GoString or the
// zap marshaler.
type Credentials struct {
	user  string
	token string
}

// NewCredentials creates a credential holder.
func NewCredentials(user, token string) Credentials {
	return Credentials{user: user, token: token}
}

// User returns the account user name.
func (c Credentials) User() string {
	return c.user
}

// Token returns the API token.
func (c Credentials) Token() string {
	return c.token
}

// HasUser reports whether a user name is set.
func (c Credentials) HasUser() bool {
	return c.user != ""
}

// HasToken reports whether a token is set.
func (c Credentials) HasToken() bool {
	return c.token != ""
}

func (c Credentials) String() string {
	return "Credentials{user: " + c.user + ", token: [redacted]}"
}

// GoString keeps %#v from printing the token.
func (c Credentials) GoString() string {
	return c.String()
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (c Credentials) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("user", c.user)
	enc.AddBool("hasToken", c.HasToken())
	return nil
}

// Package auth implements the portal login check and session tokens.
package auth

import "crypto/subtle"

// Credentials is the body of a login request. Absent fields decode as "".
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Checker accepts exactly one username/password pair.
type Checker struct {
	user []byte
	pass []byte
}

func NewChecker(userSecret, passwordSecret string) *Checker {
	return &Checker{user: []byte(userSecret), pass: []byte(passwordSecret)}
}

// Check reports whether both values equal the configured secrets byte for byte.
// A checker with an empty secret rejects everything.
func (c *Checker) Check(username, password string) bool {
	if len(c.user) == 0 || len(c.pass) == 0 {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), c.user)
	passOK := subtle.ConstantTimeCompare([]byte(password), c.pass)
	return userOK&passOK == 1
}

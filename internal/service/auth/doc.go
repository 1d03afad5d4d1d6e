// Package auth issues and verifies the HS256 access tokens used by the API
// and wraps bcrypt for password hashing and verification.
//
// Tokens are stateless: there is no refresh token and no revocation list.
// A token stays valid until its exp claim passes.
package auth

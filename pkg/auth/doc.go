// Package auth provides password hashing for user credentials. Plaintext
// passwords are accepted at the API boundary, hashed with bcrypt, and only
// the hash is ever stored or compared.
package auth

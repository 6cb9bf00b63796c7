package models

import "time"

// User is a registered account. PasswordHash holds the bcrypt encoding and
// never the plaintext password.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

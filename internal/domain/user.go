package domain

import "time"

// User is a back-office account allowed to sign in
type User struct {
	ID           int64      `json:"userId" db:"user_id"`
	Name         string     `json:"name" db:"name"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	CreatedAt    time.Time  `json:"-" db:"created_at"`
	LastLogin    *time.Time `json:"-" db:"last_login"`
}

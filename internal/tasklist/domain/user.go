package domain

import "time"

// User is an account identity. Usernames and emails are unique across the
// system; the password is stored as a PHC-encoded argon2id hash.
type User struct {
	ID                   string
	Email                string
	Username             string
	PasswordHash         string
	NotificationSettings map[string]any // free-form, default empty
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

package user

import "time"

type User struct {
	ID           uint
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}

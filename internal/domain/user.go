package domain

import "time"

type UserRole string

const (
	RoleCreator UserRole = "Creator"
	RoleClient  UserRole = "Client"
)

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Role      UserRole  `json:"role"`
	IsSponsor bool      `json:"isSponsor"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Verification struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

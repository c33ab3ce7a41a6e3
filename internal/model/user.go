package model

import (
	"time"

	"github.com/lib/pq"
)

const RoleUser = "ROLE_USER"

type User struct {
	Id          string         `db:"id"`
	FirstName   string         `db:"first_name"`
	LastName    string         `db:"last_name"`
	Email       string         `db:"email"`
	Password    string         `db:"password"`
	PhoneNumber string         `db:"phone_number"`
	Roles       pq.StringArray `db:"roles"`
	IsVerified  bool           `db:"is_verified"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// SearchCriteria filters user listing; empty fields are ignored.
type SearchCriteria struct {
	Email     string
	FirstName string
	LastName  string
}

type PageRequest struct {
	Page          int
	Size          int
	SortBy        string
	SortDirection string
}

type UserPage struct {
	Users      []User
	TotalCount int64
	Page       int
	Size       int
}

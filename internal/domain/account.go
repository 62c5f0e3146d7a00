package domain

import "time"

type AccountRole string

const (
	RolePlayer AccountRole = "player"
	RoleCoach  AccountRole = "coach"
	RoleAdmin  AccountRole = "admin"
)

type Account struct {
	ID        uint        `json:"id"`
	Email     string      `json:"email"`
	Password  string      `json:"-"`
	Name      string      `json:"name"`
	Role      AccountRole `json:"role"`
	Approved  bool        `json:"approved"`
	Skeleton  bool        `json:"skeleton"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// IsAdmin reports whether the account may run administrative workflows
// such as account merges and payment confirmation.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

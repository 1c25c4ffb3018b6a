package models

// Role is the authorization role of an account.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleMember || r == RoleAdmin
}

// AccountModel represents a registered user.
// Password holds a bcrypt hash and is never serialized.
type AccountModel struct {
	Base
	Name     string `json:"name"  gorm:"not null"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-"     gorm:"not null"`
	Role     Role   `json:"role"  gorm:"type:varchar(16);default:'member';not null"`
	Bio      string `json:"bio"`
}

func (AccountModel) TableName() string { return "accounts" }

package auth

import (
	"time"

	"github.com/inklet-blog/core/internal/models"
	"github.com/inklet-blog/core/internal/pkg/validate"
)

// RegisterDTO is the request body for account registration.
type RegisterDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio"`
}

func (d *RegisterDTO) Validate() validate.Errors {
	var errs validate.Errors
	errs.Required("name", d.Name)
	errs.MaxLen("name", d.Name, 50)
	errs.Required("email", d.Email)
	errs.Email("email", d.Email)
	errs.MinLen("password", d.Password, 6)
	return errs
}

// LoginDTO is the request body for login.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d *LoginDTO) Validate() validate.Errors {
	var errs validate.Errors
	errs.Required("email", d.Email)
	errs.Email("email", d.Email)
	errs.Required("password", d.Password)
	return errs
}

// AccountResponse is the sanitized account shape (no credential).
type AccountResponse struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Role    models.Role `json:"role"`
	Bio     string      `json:"bio"`
	Created time.Time   `json:"createdAt"`
}

// sessionResponse is returned from register and login.
type sessionResponse struct {
	Token string          `json:"token"`
	User  AccountResponse `json:"user"`
}

// ToAccountResponse strips credential fields from an account.
func ToAccountResponse(a *models.AccountModel) AccountResponse {
	return AccountResponse{
		ID:      a.ID,
		Name:    a.Name,
		Email:   a.Email,
		Role:    a.Role,
		Bio:     a.Bio,
		Created: a.CreatedAt,
	}
}

package model

// User role constants. Roles only gate which commands are offered;
// authorization is enforced by the backend.
const (
	RoleAdmin     = "admin"
	RoleVet       = "vet"
	RoleAssistant = "assistant"
)

// User represents a system user
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}

// DisplayName prefers the full name over the login name.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CreateUserRequest represents user creation parameters
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin vet assistant"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// UpdateUserRequest represents user update parameters. Password is only
// sent when a new one was provided.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin vet assistant"`
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

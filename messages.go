package auth

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/is"
)

// RegisterUserMessage is the registration payload
type RegisterUserMessage struct {
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Role      string `json:"role,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Address   string `json:"address,omitempty"`
}

func (e RegisterUserMessage) Type() string { return "user.register" }

// Validate will validate the payload
func (e RegisterUserMessage) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Phone, validation.Required, validation.Length(7, 20)),
		validation.Field(&e.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(&e.Role, validation.By(validateOptionalRole)),
		validation.Field(&e.FirstName, validation.Length(0, 200)),
		validation.Field(&e.LastName, validation.Length(0, 200)),
		validation.Field(&e.Email, validation.Length(0, 100), is.Email),
		validation.Field(&e.Address, validation.Length(0, 500)),
	)
}

// UpdateProfileMessage mutates name/email/address only. Phone, role, id, and
// password hash are immutable through this path.
type UpdateProfileMessage struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Address   string `json:"address,omitempty"`
}

func (e UpdateProfileMessage) Type() string { return "user.update_profile" }

// Validate will validate the payload
func (e UpdateProfileMessage) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.FirstName, validation.Length(0, 200)),
		validation.Field(&e.LastName, validation.Length(0, 200)),
		validation.Field(&e.Email, validation.Length(0, 100), is.Email),
		validation.Field(&e.Address, validation.Length(0, 500)),
	)
}

func validateOptionalRole(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, ok := ParseRole(s); !ok {
		return validation.NewError("validation_unknown_role", "must be one of buyer, seller, courier, admin")
	}
	return nil
}

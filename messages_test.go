package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	auth "github.com/bazarhub/go-auth"
)

func TestRegisterUserMessageValidate(t *testing.T) {
	valid := auth.RegisterUserMessage{
		Phone:    "09120000001",
		Password: "secret-password",
	}

	t.Run("accepts a minimal payload", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("accepts a full payload", func(t *testing.T) {
		msg := valid
		msg.Role = "seller"
		msg.FirstName = "Sara"
		msg.LastName = "Ahmadi"
		msg.Email = "sara@example.com"
		msg.Address = "Tehran"
		assert.NoError(t, msg.Validate())
	})

	t.Run("requires phone and password", func(t *testing.T) {
		msg := valid
		msg.Phone = ""
		assert.Error(t, msg.Validate())

		msg = valid
		msg.Password = ""
		assert.Error(t, msg.Validate())
	})

	t.Run("rejects a short password", func(t *testing.T) {
		msg := valid
		msg.Password = "short"
		assert.Error(t, msg.Validate())
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		msg := valid
		msg.Role = "superuser"
		assert.Error(t, msg.Validate())
	})

	t.Run("rejects a bad email", func(t *testing.T) {
		msg := valid
		msg.Email = "not-an-email"
		assert.Error(t, msg.Validate())
	})
}

func TestUpdateProfileMessageValidate(t *testing.T) {
	t.Run("empty payload is valid", func(t *testing.T) {
		assert.NoError(t, auth.UpdateProfileMessage{}.Validate())
	})

	t.Run("rejects a bad email", func(t *testing.T) {
		assert.Error(t, auth.UpdateProfileMessage{Email: "not-an-email"}.Validate())
	})
}

func TestMessageTypes(t *testing.T) {
	assert.Equal(t, "user.register", auth.RegisterUserMessage{}.Type())
	assert.Equal(t, "user.update_profile", auth.UpdateProfileMessage{}.Type())
}

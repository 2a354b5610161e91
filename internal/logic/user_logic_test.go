package logic

import (
	"testing"

	"github.com/blues/fundsy/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	db := newTestDB(t)
	u := NewUserLogic(db)

	user := &model.UserModel{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}
	require.NoError(t, u.CreateUser(user))
	assert.NotZero(t, user.Id)
	assert.Equal(t, "Jane Doe", user.FullName())
	assert.False(t, user.Registered())
}

func TestCreateUserValidations(t *testing.T) {
	db := newTestDB(t)
	u := NewUserLogic(db)

	assert.ErrorIs(t, u.CreateUser(&model.UserModel{LastName: "Doe", Email: "a@b.c"}), ErrNameRequired)
	assert.ErrorIs(t, u.CreateUser(&model.UserModel{FirstName: "Jane", Email: "a@b.c"}), ErrNameRequired)
	assert.ErrorIs(t, u.CreateUser(&model.UserModel{FirstName: "Jane", LastName: "Doe"}), ErrEmailRequired)
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	u := NewUserLogic(db)

	require.NoError(t, u.CreateUser(&model.UserModel{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
	}))
	assert.ErrorIs(t, u.CreateUser(&model.UserModel{
		FirstName: "John", LastName: "Doe", Email: "jane@example.com",
	}), ErrEmailTaken)
}

func TestGetUserNotFound(t *testing.T) {
	db := newTestDB(t)
	u := NewUserLogic(db)

	_, err := u.GetUser(404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

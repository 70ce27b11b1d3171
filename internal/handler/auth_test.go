package handler

import (
	"net/http"
	"testing"

	"storefront-be/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRegister(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		e := newTestEnv()
		e.users.On("Register", mock.Anything, "Jane", "jane@example.com", "secret").Return(customer(), nil)

		w := e.do(t, http.MethodPost, "/api/auth/register",
			map[string]string{"name": "Jane", "email": "jane@example.com", "password": "secret"}, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Registered", body["message"])
		u := body["user"].(map[string]any)
		assert.Equal(t, "u1", u["_id"])
		assert.NotContains(t, u, "password")
		assert.Contains(t, w.Header().Get("Set-Cookie"), "jwt=")
		assert.Contains(t, w.Header().Get("Set-Cookie"), "HttpOnly")
	})

	t.Run("EmailTaken", func(t *testing.T) {
		e := newTestEnv()
		e.users.On("Register", mock.Anything, "Jane", "jane@example.com", "secret").Return(nil, user.ErrEmailExists)

		w := e.do(t, http.MethodPost, "/api/auth/register",
			map[string]string{"name": "Jane", "email": "jane@example.com", "password": "secret"}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"Email already exists"}`, w.Body.String())
		assert.Empty(t, w.Header().Get("Set-Cookie"))
	})

	t.Run("MissingEmail", func(t *testing.T) {
		e := newTestEnv()

		w := e.do(t, http.MethodPost, "/api/auth/register", map[string]string{"name": "Jane", "password": "x"}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"email is required"}`, w.Body.String())
	})
}

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		e := newTestEnv()
		e.users.On("Login", mock.Anything, "jane@example.com", "secret").Return(customer(), nil)

		w := e.do(t, http.MethodPost, "/api/auth/login",
			map[string]string{"email": "jane@example.com", "password": "secret"}, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Logged in", decode(t, w)["message"])
		assert.Contains(t, w.Header().Get("Set-Cookie"), "jwt=")
	})

	t.Run("UniformFailure", func(t *testing.T) {
		e := newTestEnv()
		e.users.On("Login", mock.Anything, "nobody@example.com", "x").Return(nil, user.ErrInvalidCredentials)
		e.users.On("Login", mock.Anything, "jane@example.com", "wrong").Return(nil, user.ErrInvalidCredentials)

		unknown := e.do(t, http.MethodPost, "/api/auth/login",
			map[string]string{"email": "nobody@example.com", "password": "x"}, nil)
		wrong := e.do(t, http.MethodPost, "/api/auth/login",
			map[string]string{"email": "jane@example.com", "password": "wrong"}, nil)

		assert.Equal(t, http.StatusBadRequest, unknown.Code)
		assert.Equal(t, unknown.Code, wrong.Code)
		assert.Equal(t, unknown.Body.String(), wrong.Body.String())
	})
}

func TestLogout(t *testing.T) {
	e := newTestEnv()

	w := e.do(t, http.MethodPost, "/api/auth/logout", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Logged out"}`, w.Body.String())
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
	e.carts.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything, mock.Anything)
}

func TestMe(t *testing.T) {
	e := newTestEnv()
	cookie := e.session(t, customer())

	w := e.do(t, http.MethodGet, "/api/auth/me", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "jane@example.com", body["email"])
	assert.NotContains(t, body, "password")

	w = e.do(t, http.MethodGet, "/api/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateProfile(t *testing.T) {
	t.Run("WrongCurrentPassword", func(t *testing.T) {
		e := newTestEnv()
		cookie := e.session(t, customer())
		e.users.On("UpdateProfile", mock.Anything, "u1", mock.MatchedBy(func(p user.ProfilePatch) bool {
			return p.CurrentPassword != nil && *p.CurrentPassword == "bad" && *p.NewPassword == "new"
		})).Return(nil, user.ErrCurrentPasswordIncorrect)

		w := e.do(t, http.MethodPut, "/api/auth/profile",
			map[string]string{"currentPassword": "bad", "newPassword": "new"}, cookie)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"Current password is incorrect"}`, w.Body.String())
	})

	t.Run("NameAndAddress", func(t *testing.T) {
		e := newTestEnv()
		cookie := e.session(t, customer())
		updated := customer()
		updated.Name = "Janet"
		e.users.On("UpdateProfile", mock.Anything, "u1", mock.MatchedBy(func(p user.ProfilePatch) bool {
			return *p.Name == "Janet" && p.Address != nil && p.Address.City == "Springfield" && p.NewPassword == nil
		})).Return(updated, nil)

		w := e.do(t, http.MethodPut, "/api/auth/profile", map[string]any{
			"name":    "Janet",
			"address": map[string]string{"street": "1 Main St", "city": "Springfield", "state": "IL", "zipCode": "62701", "country": "US"},
		}, cookie)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Profile updated successfully", body["message"])
		assert.Equal(t, "Janet", body["user"].(map[string]any)["name"])
	})
}

package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardiann-eng/CryptgenFix122/core/user"
)

func sessionCookie(t *testing.T, app *testApp, rec interface{ Result() *http.Response }) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == app.conf.Server.SessionCookieName {
			return c
		}
	}
	t.Fatalf("no %q cookie in response", app.conf.Server.SessionCookieName)
	return nil
}

func TestRegister(t *testing.T) {
	app := setup(t)

	tests := []httpTest{
		{
			name:     "missing fields",
			method:   http.MethodPost,
			path:     "/api/register",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"username": "this field is required",
				"password": "this field is required",
			}),
		},
		{
			name:     "numeric password",
			method:   http.MethodPost,
			path:     "/api/register",
			body:     []byte(`{"username":"rina","password":"12345678"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"password": "password cannot be entirely numeric"}),
		},
		{
			name:     "taken username",
			method:   http.MethodPost,
			path:     "/api/register",
			body:     []byte(`{"username":"Student","password":"Rin4-Secret"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"username": user.ErrUsernameExists.Error()}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.run(t, tt)
		})
	}

	t.Run("valid", func(t *testing.T) {
		var usr user.User
		body := []byte(`{"username":"Rina","password":"Rin4-Secret","passwordConfirm":"Rin4-Secret"}`)
		rec := app.serve(t, http.MethodPost, "/api/register", "", body, &usr)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, "rina", usr.Username)
		assert.Equal(t, user.RoleUser, usr.Role)
		assert.NotContains(t, rec.Body.String(), "password")

		cookie := sessionCookie(t, app, rec)
		assert.True(t, cookie.HttpOnly)
		assert.NotEmpty(t, cookie.Value)

		req, rec2 := newRequest(http.MethodGet, "/api/user")
		req.AddCookie(cookie)
		app.ServeHTTP(rec2, req)
		assert.Equal(t, http.StatusOK, rec2.Code)
		assert.Contains(t, rec2.Body.String(), `"username":"rina"`)
	})
}

func TestLoginLogout(t *testing.T) {
	app := setup(t)

	tests := []httpTest{
		{
			name:     "wrong password",
			method:   http.MethodPost,
			path:     "/api/login",
			body:     []byte(`{"username":"student","password":"nope-nope"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "invalid username or password"}),
		},
		{
			name:     "unknown user",
			method:   http.MethodPost,
			path:     "/api/login",
			body:     []byte(`{"username":"ghost","password":"` + userPwd + `"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "invalid username or password"}),
		},
		{
			name:     "missing password",
			method:   http.MethodPost,
			path:     "/api/login",
			body:     []byte(`{"username":"student"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"password": "this field is required"}),
		},
		{
			name:     "current user without session",
			method:   http.MethodGet,
			path:     "/api/user",
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errNoAuth),
		},
		{
			name:     "current user with a forged token",
			method:   http.MethodGet,
			path:     "/api/user",
			token:    app.userToken + "x",
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errNoAuth),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.run(t, tt)
		})
	}

	t.Run("session round trip", func(t *testing.T) {
		var usr user.User
		body := []byte(`{"username":"STUDENT","password":"` + userPwd + `"}`)
		rec := app.serve(t, http.MethodPost, "/api/login", "", body, &usr)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "student", usr.Username)
		assert.False(t, usr.LastLogin.IsZero())
		cookie := sessionCookie(t, app, rec)

		req, rec := newRequest(http.MethodGet, "/api/user")
		req.AddCookie(cookie)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		req, rec = newRequest(http.MethodPost, "/api/logout")
		req.AddCookie(cookie)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
		cleared := sessionCookie(t, app, rec)
		assert.Empty(t, cleared.Value)
		assert.Less(t, cleared.MaxAge, 0)
	})

	t.Run("admin token", func(t *testing.T) {
		var usr user.User
		rec := app.serve(t, http.MethodGet, "/api/user", app.adminToken, nil, &usr)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, app.conf.Admin.Username, usr.Username)
		assert.True(t, usr.IsAdmin())
	})
}

func TestHome(t *testing.T) {
	app := setup(t)
	req, rec := newRequest(http.MethodGet, "/")
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Cryptgen API!", rec.Body.String())
}

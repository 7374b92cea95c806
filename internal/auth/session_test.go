package auth

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/isdelr/ecolearn/internal/apiclient"
	"github.com/isdelr/ecolearn/internal/database"
	"github.com/isdelr/ecolearn/internal/models"
	"github.com/isdelr/ecolearn/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	calls    int
	loginErr error
	meErr    error
	token    string
	gotToken string
	cred     *Credential
}

func (f *fakeAuthService) Login(_ context.Context, creds models.Credentials) (models.AuthResult, error) {
	f.calls++
	if f.loginErr != nil {
		return models.AuthResult{}, f.loginErr
	}
	return models.AuthResult{
		Token: f.token,
		User:  models.User{ID: "u-1", Name: "Jane", Email: creds.Email},
	}, nil
}

func (f *fakeAuthService) Register(_ context.Context, p models.RegisterPayload) (models.User, error) {
	f.calls++
	return models.User{ID: "u-2", Name: p.Name, Email: p.Email}, nil
}

func (f *fakeAuthService) Me(context.Context) (models.User, error) {
	f.calls++
	if f.cred != nil {
		f.gotToken = f.cred.Token()
	}
	if f.meErr != nil {
		return models.User{}, f.meErr
	}
	return models.User{ID: "u-1", Name: "Jane", Email: "jane@example.com"}, nil
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestLoginSuccess(t *testing.T) {
	svc := &fakeAuthService{token: "opaque-token"}
	store := NewMemoryStore("")
	cred := NewCredential()
	s := NewSession(svc, store, cred)

	user, err := s.Login(context.Background(), models.Credentials{Email: "jane@example.com", Password: "secret1"})
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, Authenticated, s.State())
	got, ok := s.User()
	assert.True(t, ok)
	assert.Equal(t, "jane@example.com", got.Email)
	assert.Equal(t, "opaque-token", cred.Token())

	stored, _ := store.Load()
	assert.Equal(t, "opaque-token", stored)
}

func TestLoginInvalidCredentials(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		svc := &fakeAuthService{loginErr: &apiclient.HTTPError{Status: status}}
		store := NewMemoryStore("")
		s := NewSession(svc, store, NewCredential())

		_, err := s.Login(context.Background(), models.Credentials{Email: "jane@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Equal(t, apiclient.KindInvalidCredentials, apiclient.Kind(err))
		assert.Equal(t, Anonymous, s.State())
		stored, _ := store.Load()
		assert.Empty(t, stored)
	}
}

func TestLoginNetworkErrorPropagates(t *testing.T) {
	netErr := &apiclient.NetworkError{Op: "POST /auth/login", Err: errors.New("connection refused")}
	s := NewSession(&fakeAuthService{loginErr: netErr}, NewMemoryStore(""), NewCredential())

	_, err := s.Login(context.Background(), models.Credentials{Email: "jane@example.com", Password: "secret1"})
	var target *apiclient.NetworkError
	assert.ErrorAs(t, err, &target)
	assert.False(t, IsInvalidCredentials(err))
	assert.Equal(t, Anonymous, s.State())
}

func TestLoginValidatesBeforeDispatch(t *testing.T) {
	svc := &fakeAuthService{}
	s := NewSession(svc, NewMemoryStore(""), NewCredential())

	_, err := s.Login(context.Background(), models.Credentials{Email: "not-an-email"})
	var vErr *validation.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.NotEmpty(t, vErr.Field("email"))
	assert.NotEmpty(t, vErr.Field("password"))
	assert.Zero(t, svc.calls)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name  string
		form  models.RegisterForm
		field string
	}{
		{
			name:  "password mismatch",
			form:  models.RegisterForm{Name: "Jane", Email: "jane@example.com", Password: "secret1", ConfirmPassword: "secret2"},
			field: "confirmPassword",
		},
		{
			name:  "password too short",
			form:  models.RegisterForm{Name: "Jane", Email: "jane@example.com", Password: "abc", ConfirmPassword: "abc"},
			field: "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAuthService{}
			s := NewSession(svc, NewMemoryStore(""), NewCredential())

			_, err := s.Register(context.Background(), tt.form)
			var vErr *validation.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.NotEmpty(t, vErr.Field(tt.field))
			assert.Zero(t, svc.calls, "no network call on invalid input")
		})
	}
}

func TestRegisterDoesNotAuthenticate(t *testing.T) {
	svc := &fakeAuthService{}
	s := NewSession(svc, NewMemoryStore(""), NewCredential())

	user, err := s.Register(context.Background(), models.RegisterForm{
		Name: "Jane", Email: "jane@example.com", Password: "secret1", ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane", user.Name)
	assert.Equal(t, 1, svc.calls)
	assert.Equal(t, Anonymous, s.State())
}

func TestLogoutIdempotent(t *testing.T) {
	svc := &fakeAuthService{token: "opaque-token"}
	store := NewMemoryStore("")
	cred := NewCredential()
	s := NewSession(svc, store, cred)

	_, err := s.Login(context.Background(), models.Credentials{Email: "jane@example.com", Password: "secret1"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.NoError(t, s.Logout())
		assert.Equal(t, Anonymous, s.State())
		assert.Empty(t, cred.Token())
		stored, _ := store.Load()
		assert.Empty(t, stored)
	}
}

func TestRestore(t *testing.T) {
	now := time.Now()

	t.Run("no token", func(t *testing.T) {
		svc := &fakeAuthService{}
		s := NewSession(svc, NewMemoryStore(""), NewCredential())
		require.NoError(t, s.Restore(context.Background()))
		assert.Equal(t, Anonymous, s.State())
		assert.Zero(t, svc.calls)
	})

	t.Run("expired token is cleared without a call", func(t *testing.T) {
		svc := &fakeAuthService{}
		store := NewMemoryStore(signedToken(t, now.Add(-time.Hour)))
		s := NewSession(svc, store, NewCredential())

		require.NoError(t, s.Restore(context.Background()))
		assert.Equal(t, Anonymous, s.State())
		assert.Zero(t, svc.calls)
		stored, _ := store.Load()
		assert.Empty(t, stored)
	})

	t.Run("malformed jwt is cleared", func(t *testing.T) {
		store := NewMemoryStore("not.a.jwt")
		s := NewSession(&fakeAuthService{}, store, NewCredential())

		require.NoError(t, s.Restore(context.Background()))
		stored, _ := store.Load()
		assert.Empty(t, stored)
	})

	t.Run("valid token authenticates", func(t *testing.T) {
		token := signedToken(t, now.Add(time.Hour))
		cred := NewCredential()
		svc := &fakeAuthService{cred: cred}
		s := NewSession(svc, NewMemoryStore(token), cred)

		require.NoError(t, s.Restore(context.Background()))
		assert.Equal(t, Authenticated, s.State())
		assert.Equal(t, token, svc.gotToken, "me() is called with the stored token attached")
		assert.Equal(t, token, cred.Token())
	})

	t.Run("rejected token is cleared", func(t *testing.T) {
		token := signedToken(t, now.Add(time.Hour))
		store := NewMemoryStore(token)
		cred := NewCredential()
		s := NewSession(&fakeAuthService{meErr: &apiclient.HTTPError{Status: http.StatusUnauthorized}}, store, cred)

		require.NoError(t, s.Restore(context.Background()))
		assert.Equal(t, Anonymous, s.State())
		assert.Empty(t, cred.Token())
		stored, _ := store.Load()
		assert.Empty(t, stored)
	})

	t.Run("network failure keeps the token", func(t *testing.T) {
		token := signedToken(t, now.Add(time.Hour))
		store := NewMemoryStore(token)
		cred := NewCredential()
		netErr := &apiclient.NetworkError{Op: "GET /auth/me", Err: errors.New("connection refused")}
		s := NewSession(&fakeAuthService{meErr: netErr}, store, cred)

		err := s.Restore(context.Background())
		var target *apiclient.NetworkError
		assert.ErrorAs(t, err, &target)
		assert.Equal(t, Anonymous, s.State())
		assert.Empty(t, cred.Token())
		stored, _ := store.Load()
		assert.Equal(t, token, stored)
	})
}

func TestSQLiteStore(t *testing.T) {
	db, err := database.New(filepath.Join(t.TempDir(), "tokens.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.Migrate(db))

	store := NewSQLiteStore(db, "default")
	other := NewSQLiteStore(db, "work")

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save("first"))
	require.NoError(t, store.Save("second"))
	require.NoError(t, other.Save("work-token"))

	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "second", token)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	token, err = other.Load()
	require.NoError(t, err)
	assert.Equal(t, "work-token", token)
}

func TestTokenUsable(t *testing.T) {
	now := time.Now()
	assert.False(t, tokenUsable("", now))
	assert.True(t, tokenUsable("opaque", now))
	assert.True(t, tokenUsable(signedToken(t, now.Add(time.Minute)), now))
	assert.False(t, tokenUsable(signedToken(t, now.Add(-time.Minute)), now))
	assert.False(t, tokenUsable("a.b.c", now))
}

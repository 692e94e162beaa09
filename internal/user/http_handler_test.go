package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/httpx"
	"bookshelf/internal/platform/crypto"
)

type authResponse struct {
	User AuthUser `json:"user"`
}

func TestHTTPHandler_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(NewService(mockRepo, testSecret, time.Hour), httpx.NewErrorTranslator())

	rejected := []struct {
		name    string
		body    string
		message string
	}{
		{"blank username", `{"username":"  ","password":"!aBc123"}`, "username can't be blank"},
		{"missing username", `{"password":"!aBc123"}`, "username can't be blank"},
		{"blank password", `{"username":"alice","password":""}`, "password can't be blank"},
		{"weak password", `{"username":"alice","password":"ABCdef123"}`, "password is not strong enough"},
		{"empty body", ``, "username can't be blank"},
		{"malformed body", `{"username":`, "invalid request body"},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(tt.body))

			handler.Register(w, r)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var body httpx.MessageResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body.Message)
		})
	}

	t.Run("username taken", func(t *testing.T) {
		mockRepo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(User{ID: "user-1", Username: "alice"}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{"username":"alice","password":"!aBc123"}`))

		handler.Register(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"username taken"}`, w.Body.String())
	})

	t.Run("password too long to hash", func(t *testing.T) {
		password := "!aBc123" + strings.Repeat("x", 80)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/auth/register",
			strings.NewReader(`{"username":"alice","password":"`+password+`"}`))

		handler.Register(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"password is too long"}`, w.Body.String())
	})

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(User{}, ErrNotFound)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).SetArg(1, User{ID: "user-1", Username: "alice"}).Return(nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{"username":" alice ","password":"!aBc123"}`))

		handler.Register(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var body authResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "user-1", body.User.ID)
		assert.Equal(t, "alice", body.User.Username)
		assert.NotEmpty(t, body.User.Token)
	})
}

func TestHTTPHandler_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(NewService(mockRepo, testSecret, time.Hour), httpx.NewErrorTranslator())

	t.Run("blank username", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"   ","password":"!aBc123"}`))

		handler.Login(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"username can't be blank"}`, w.Body.String())
	})

	t.Run("blank password", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"alice"}`))

		handler.Login(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"password can't be blank"}`, w.Body.String())
	})

	t.Run("weak password is not rechecked", func(t *testing.T) {
		mockRepo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(User{}, ErrNotFound)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"alice","password":"weak"}`))

		handler.Login(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"username or password is invalid"}`, w.Body.String())
	})

	t.Run("success", func(t *testing.T) {
		hash, err := crypto.HashPassword("!aBc123")
		require.NoError(t, err)
		mockRepo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(User{ID: "user-1", Username: "alice", PasswordHash: hash}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"alice","password":"!aBc123"}`))

		handler.Login(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var body authResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "user-1", body.User.ID)
		assert.Equal(t, "alice", body.User.Username)
		assert.NotEmpty(t, body.User.Token)
	})
}

func TestHTTPHandler_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(NewService(mockRepo, testSecret, time.Hour), httpx.NewErrorTranslator())

	t.Run("returns the presented token", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), "user-1").Return(User{ID: "user-1", Username: "alice"}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		r = r.WithContext(httpx.ContextWithUser(r.Context(), "user-1", "presented-token"))

		handler.Me(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user":{"id":"user-1","username":"alice","token":"presented-token"}}`, w.Body.String())
	})

	t.Run("deleted user", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), "user-1").Return(User{}, ErrNotFound)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		r = r.WithContext(httpx.ContextWithUser(r.Context(), "user-1", "presented-token"))

		handler.Me(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"code":"invalid_token","message":"user no longer exists"}`, w.Body.String())
	})
}

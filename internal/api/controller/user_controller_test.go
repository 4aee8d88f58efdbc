package controller

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"ctchen222/tictactoe-ai/internal/api/models"
	"ctchen222/tictactoe-ai/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubUserService struct {
	registerErr error
	loginErr    error
}

func (s *stubUserService) Register(ctx context.Context, req *models.RegisterRequest) error {
	return s.registerErr
}

func (s *stubUserService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	if s.loginErr != nil {
		return "", s.loginErr
	}
	return "signed-token", nil
}

func (s *stubUserService) GuestLogin(ctx context.Context) (string, error) {
	return "guest-id", nil
}

func (s *stubUserService) ParseToken(tokenString string) (string, error) {
	return "", service.ErrInvalidToken
}

func newUserRouter(svc service.UserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	uc := NewUserController(svc)
	r := gin.New()
	r.POST("/api/users/register", uc.Register)
	r.POST("/api/users/login", uc.Login)
	r.POST("/api/users/guest", uc.GuestLogin)
	return r
}

func TestUserController(t *testing.T) {
	tests := []struct {
		name   string
		svc    *stubUserService
		path   string
		body   string
		code   int
		extras string
	}{
		{name: "register", svc: &stubUserService{}, path: "/api/users/register", body: `{"username":"alice","password":"secret1"}`, code: http.StatusOK, extras: `{"message":"User created successfully"}`},
		{name: "register short password", svc: &stubUserService{}, path: "/api/users/register", body: `{"username":"alice","password":"x"}`, code: http.StatusBadRequest},
		{name: "register taken", svc: &stubUserService{registerErr: service.ErrUsernameTaken}, path: "/api/users/register", body: `{"username":"alice","password":"secret1"}`, code: http.StatusConflict},
		{name: "register store failure", svc: &stubUserService{registerErr: errors.New("disk full")}, path: "/api/users/register", body: `{"username":"alice","password":"secret1"}`, code: http.StatusInternalServerError},
		{name: "login", svc: &stubUserService{}, path: "/api/users/login", body: `{"username":"alice","password":"secret1"}`, code: http.StatusOK, extras: `{"token":"signed-token"}`},
		{name: "login wrong password", svc: &stubUserService{loginErr: service.ErrInvalidCredentials}, path: "/api/users/login", body: `{"username":"alice","password":"nope"}`, code: http.StatusUnauthorized},
		{name: "login missing body", svc: &stubUserService{}, path: "/api/users/login", body: `{}`, code: http.StatusBadRequest},
		{name: "guest", svc: &stubUserService{}, path: "/api/users/guest", body: ``, code: http.StatusOK, extras: `{"player_id":"guest-id"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := post(t, newUserRouter(tt.svc), tt.path, tt.body)
			assert.Equal(t, tt.code, w.Code)
			if tt.extras != "" {
				assert.JSONEq(t, tt.extras, string(env.Extras))
			}
		})
	}
}

package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ctchen222/tictactoe-ai/internal/api/service"
	"ctchen222/tictactoe-ai/internal/bot"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Extras  json.RawMessage `json:"extras"`
}

func newEngineRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	calculator, err := bot.NewBotMoveCalculator()
	require.NoError(t, err)
	ec := NewEngineController(service.NewEngineService(calculator))

	r := gin.New()
	r.POST("/api/engine/evaluate", ec.Evaluate)
	r.POST("/api/engine/move", ec.Move)
	return r
}

func post(t *testing.T, h http.Handler, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestEngineController_Evaluate(t *testing.T) {
	router := newEngineRouter(t)

	tests := []struct {
		name   string
		body   string
		code   int
		extras string
	}{
		{
			name:   "x wins",
			body:   `{"board":["X","X","X","O","O","","","",""]}`,
			code:   http.StatusOK,
			extras: `{"status":"win","winner":"X","next":"","empty_cells":[5,6,7,8]}`,
		},
		{
			name:   "empty board",
			body:   `{"board":["","","","","","","","",""]}`,
			code:   http.StatusOK,
			extras: `{"status":"in_progress","winner":"","next":"X","empty_cells":[0,1,2,3,4,5,6,7,8]}`,
		},
		{
			name:   "draw",
			body:   `{"board":["x","o","x","x","o","o","o","x","x"]}`,
			code:   http.StatusOK,
			extras: `{"status":"draw","winner":"","next":"","empty_cells":[]}`,
		},
		{
			name: "short board",
			body: `{"board":["X","O"]}`,
			code: http.StatusBadRequest,
		},
		{
			name: "unknown mark",
			body: `{"board":["Z","","","","","","","",""]}`,
			code: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := post(t, router, "/api/engine/evaluate", tt.body)
			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.code, env.Code)
			assert.Equal(t, tt.code == http.StatusOK, env.Success)
			if tt.extras != "" {
				assert.JSONEq(t, tt.extras, string(env.Extras))
			}
		})
	}
}

func TestEngineController_Move(t *testing.T) {
	router := newEngineRouter(t)

	tests := []struct {
		name   string
		body   string
		code   int
		extras string
	}{
		{
			name:   "hard completes its line",
			body:   `{"board":["O","O","","X","X","","","",""],"player":"O","difficulty":"hard"}`,
			code:   http.StatusOK,
			extras: `{"index":2,"found":true}`,
		},
		{
			name:   "hard blocks",
			body:   `{"board":["O","O","","","X","","","","X"],"player":"X","difficulty":"hard"}`,
			code:   http.StatusOK,
			extras: `{"index":2,"found":true}`,
		},
		{
			name:   "easy takes the only cell",
			body:   `{"board":["X","O","X","X","","O","O","X","O"],"player":"x"}`,
			code:   http.StatusOK,
			extras: `{"index":4,"found":true}`,
		},
		{
			name:   "full board",
			body:   `{"board":["X","O","X","X","O","O","O","X","X"],"player":"O","difficulty":"hard"}`,
			code:   http.StatusOK,
			extras: `{"index":null,"found":false}`,
		},
		{
			name: "missing player",
			body: `{"board":["","","","","","","","",""]}`,
			code: http.StatusBadRequest,
		},
		{
			name: "unknown difficulty",
			body: `{"board":["","","","","","","","",""],"player":"O","difficulty":"medium"}`,
			code: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := post(t, router, "/api/engine/move", tt.body)
			assert.Equal(t, tt.code, w.Code)
			if tt.extras != "" {
				assert.JSONEq(t, tt.extras, string(env.Extras))
			}
		})
	}
}

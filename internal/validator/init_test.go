package validator

import (
	"testing"

	"ctchen222/tictactoe-ai/pkg/proto"

	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int { return &i }

func TestClientMessageValidation(t *testing.T) {
	tests := []struct {
		name    string
		msg     proto.ClientToServerMessage
		wantErr bool
	}{
		{name: "move", msg: proto.ClientToServerMessage{Type: "move", Cell: intPtr(8)}},
		{name: "move on cell zero", msg: proto.ClientToServerMessage{Type: "move", Cell: intPtr(0)}},
		{name: "restart", msg: proto.ClientToServerMessage{Type: "restart"}},
		{name: "configure", msg: proto.ClientToServerMessage{Type: "configure", Mode: "two_player", Difficulty: "hard", Mark: "o"}},
		{name: "missing type", msg: proto.ClientToServerMessage{}, wantErr: true},
		{name: "unknown type", msg: proto.ClientToServerMessage{Type: "rematch"}, wantErr: true},
		{name: "cell out of range", msg: proto.ClientToServerMessage{Type: "move", Cell: intPtr(9)}, wantErr: true},
		{name: "negative cell", msg: proto.ClientToServerMessage{Type: "move", Cell: intPtr(-1)}, wantErr: true},
		{name: "unknown mode", msg: proto.ClientToServerMessage{Type: "configure", Mode: "online"}, wantErr: true},
		{name: "unknown difficulty", msg: proto.ClientToServerMessage{Type: "configure", Difficulty: "medium"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := GetValidator().Struct(tt.msg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

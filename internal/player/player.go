package player

// Connection is an interface that abstracts the websocket connection.
type Connection interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (int, []byte, error)
	Close() error
}

// Player represents a participant in a room: the human client or the computer.
type Player struct {
	ID    string
	Conn  Connection
	IsBot bool
}

// NewPlayer creates a player bound to conn.
func NewPlayer(id string, conn Connection) *Player {
	return &Player{
		ID:   id,
		Conn: conn,
	}
}

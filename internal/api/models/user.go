package models

// User is an account row; PasswordHash is a bcrypt hash and never leaves the server.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=20"`
	Password string `json:"password" binding:"required,min=6,max=50"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the signed JWT that authorizes the websocket upgrade.
type LoginResponse struct {
	Token string `json:"token"`
}

// GuestResponse carries the player ID handed to an anonymous client.
type GuestResponse struct {
	PlayerID string `json:"player_id"`
}

package game

import (
	"errors"
	"fmt"
)

// Mode selects who plays the second seat.
type Mode string

const (
	ModeSingle    Mode = "single"     // human vs computer
	ModeTwoPlayer Mode = "two_player" // two humans on one client
)

var ErrInvalidMode = errors.New("invalid game mode")

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeSingle, nil
	case ModeSingle, ModeTwoPlayer:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Settings are chosen by the client and fixed for the lifetime of a round.
// Changing any of them starts a new game.
type Settings struct {
	Mode       Mode
	Difficulty string
	HumanMark  PlayerMark
}

// DefaultSettings matches a fresh page load: single player, easy, human as X.
func DefaultSettings() Settings {
	return Settings{Mode: ModeSingle, Difficulty: "easy", HumanMark: PlayerX}
}

// ComputerMark is the computer's mark in single mode and None otherwise.
func (s Settings) ComputerMark() PlayerMark {
	if s.Mode != ModeSingle {
		return None
	}
	return s.HumanMark.Opponent()
}

package bot

import (
	"testing"

	"ctchen222/tictactoe-ai/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = game.PlayerX
	o = game.PlayerO
	e = game.None
)

func TestHardMoveScenarios(t *testing.T) {
	tests := []struct {
		name   string
		board  game.Board
		player game.PlayerMark
		want   int
	}{
		{
			name:   "O completes the top row",
			board:  game.Board{o, o, e, x, x, e, e, e, e},
			player: o,
			want:   2,
		},
		{
			name:   "X prefers its own win over blocking",
			board:  game.Board{x, x, e, o, o, e, e, e, e},
			player: x,
			want:   2,
		},
		{
			name:   "O blocks X on the left column",
			board:  game.Board{x, e, e, x, o, e, e, e, e},
			player: o,
			want:   6,
		},
		{
			name:   "X blocks O on the anti-diagonal",
			board:  game.Board{x, e, o, e, o, e, e, e, x},
			player: x,
			want:   6,
		},
		{
			name:   "Last cell",
			board:  game.Board{x, o, x, x, o, o, o, x, e},
			player: x,
			want:   8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectMove(tt.board, tt.player, Hard)
			if !ok || got != tt.want {
				t.Errorf("SelectMove(%v, %s, hard) got (%d, %v), want (%d, true)", tt.board, tt.player, got, ok, tt.want)
			}
		})
	}
}

func TestHardMoveTieBreakIsFirstInCellOrder(t *testing.T) {
	// O wins at 2 (anti-diagonal) and at 3 (left column); the search keeps the first.
	board := game.Board{o, x, e, e, o, x, o, x, x}
	m, ok := hardMove(board, o, nil)
	require.True(t, ok)
	assert.Equal(t, winScore, m.Score)
	assert.Equal(t, 2, m.Index)

	alt := board
	alt[3] = o
	assert.Equal(t, winScore, minimax(alt, x, nil), "cell 3 scores the same")
}

func TestHardMoveEmptyBoardAsO(t *testing.T) {
	got, ok := SelectMove(game.Board{}, o, Hard)
	require.True(t, ok)
	assert.GreaterOrEqual(t, got, 0)
	assert.LessOrEqual(t, got, 8)

	m, _ := hardMove(game.Board{}, o, nil)
	assert.Equal(t, drawScore, m.Score, "perfect play from an empty board is a draw")
}

func TestHardVersusHardEndsInDraw(t *testing.T) {
	for _, first := range []game.PlayerMark{x, o} {
		var board game.Board
		mover := first
		for !game.Evaluate(board).IsOver() {
			idx, ok := SelectMove(board, mover, Hard)
			require.True(t, ok)
			require.Equal(t, e, board[idx], "selected occupied cell %d", idx)
			board[idx] = mover
			mover = mover.Opponent()
		}
		assert.Equal(t, game.Outcome{Status: game.StatusDraw}, game.Evaluate(board), "%s first:\n%v", first, board)
	}
}

// replyAllX plays every legal X move from board and answers each with Hard O,
// failing if any line of play ends with X winning.
func replyAllX(t *testing.T, board game.Board, games *int) {
	t.Helper()
	for _, idx := range game.EmptyCells(board) {
		next := board
		next[idx] = x
		if out := game.Evaluate(next); out.IsOver() {
			if out.Winner == x {
				t.Fatalf("X won against hard O:\n%v", next)
			}
			*games++
			continue
		}

		reply, ok := SelectMove(next, o, Hard)
		if !ok {
			t.Fatalf("no reply on a board with empty cells:\n%v", next)
		}
		next[reply] = o
		if out := game.Evaluate(next); out.IsOver() {
			*games++
			continue
		}
		replyAllX(t, next, games)
	}
}

func TestHardNeverLosesAsO(t *testing.T) {
	t.Run("X moves first", func(t *testing.T) {
		games := 0
		replyAllX(t, game.Board{}, &games)
		assert.Positive(t, games)
	})

	t.Run("O moves first", func(t *testing.T) {
		var board game.Board
		first, ok := SelectMove(board, o, Hard)
		require.True(t, ok)
		board[first] = o
		games := 0
		replyAllX(t, board, &games)
		assert.Positive(t, games)
	})
}

func TestHardIsDeterministic(t *testing.T) {
	boards := []game.Board{
		{},
		{x, e, e, e, e, e, e, e, e},
		{x, e, e, e, o, e, e, e, x},
		{e, x, e, e, e, e, e, o, e},
	}
	for _, b := range boards {
		mover := o
		if b.Count(x) == b.Count(o) {
			mover = x
		}
		first, _ := SelectMove(b, mover, Hard)
		for range 5 {
			again, _ := SelectMove(b, mover, Hard)
			if again != first {
				t.Fatalf("SelectMove(%v) returned %d then %d", b, first, again)
			}
		}
	}
}

func TestSelectMoveDoesNotMutateBoard(t *testing.T) {
	board := game.Board{x, e, e, e, o, e, e, e, e}
	snapshot := board
	for _, d := range []Difficulty{Easy, Hard} {
		SelectMove(board, x, d)
		assert.Equal(t, snapshot, board, "difficulty %s", d)
	}
}

func TestSelectMoveFullBoard(t *testing.T) {
	board := game.Board{x, o, x, x, o, o, o, x, x}
	require.Equal(t, game.Outcome{Status: game.StatusDraw}, game.Evaluate(board))
	for _, d := range []Difficulty{Easy, Hard} {
		idx, ok := SelectMove(board, o, d)
		assert.False(t, ok, "difficulty %s", d)
		assert.Equal(t, -1, idx)
	}
}

func TestSelectMoveRejectsNonPlayer(t *testing.T) {
	board := game.Board{x}
	for _, player := range []game.PlayerMark{e, game.PlayerMark("Z")} {
		for _, d := range []Difficulty{Easy, Hard, Difficulty("medium")} {
			idx, ok := SelectMove(board, player, d)
			assert.False(t, ok, "player %q difficulty %s", player, d)
			assert.Equal(t, -1, idx)
		}
	}

	m, ok := hardMove(board, e, nil)
	assert.False(t, ok)
	assert.Equal(t, -1, m.Index)
}

func TestEasyMove(t *testing.T) {
	t.Run("Only one spot left", func(t *testing.T) {
		board := game.Board{x, o, x, o, e, x, o, x, o}
		for range 20 {
			idx, ok := SelectMove(board, x, Easy)
			if !ok || idx != 4 {
				t.Fatalf("easy move should pick the only available cell 4, got (%d, %v)", idx, ok)
			}
		}
	})

	t.Run("Multiple spots left - picks only empty cells", func(t *testing.T) {
		board := game.Board{x, e, e, e, o, e, e, e, x}
		seen := make(map[int]bool)
		for range 500 {
			idx, ok := easyMove(board)
			require.True(t, ok)
			require.Equal(t, e, board[idx], "easy move picked occupied cell %d", idx)
			seen[idx] = true
		}
		assert.Len(t, seen, len(game.EmptyCells(board)), "every empty cell should come up over 500 draws")
	})
}

func TestSelectMoveUnknownDifficultyPlaysHard(t *testing.T) {
	idx, ok := SelectMove(game.Board{o, o, e, x, x, e, e, e, e}, o, Difficulty("medium"))
	require.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestParseDifficulty(t *testing.T) {
	for in, want := range map[string]Difficulty{"": Easy, "easy": Easy, "HARD": Hard, " hard ": Hard} {
		got, err := ParseDifficulty(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseDifficulty("medium")
	assert.ErrorIs(t, err, ErrUnknownDifficulty)
}

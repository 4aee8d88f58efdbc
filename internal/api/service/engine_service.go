package service

import (
	"context"
	"errors"

	"ctchen222/tictactoe-ai/internal/api/models"
	"ctchen222/tictactoe-ai/internal/bot"
	"ctchen222/tictactoe-ai/internal/game"
)

// ErrBadInput marks request errors caused by the caller.
var ErrBadInput = errors.New("bad input")

// EngineService exposes the evaluator and the move selector over HTTP.
type EngineService interface {
	Evaluate(ctx context.Context, req *models.EvaluateRequest) (*models.EvaluateResponse, error)
	SelectMove(ctx context.Context, req *models.MoveRequest) (*models.MoveResponse, error)
}

type engineService struct {
	calculator bot.MoveCalculator
}

// NewEngineService creates an EngineService backed by calculator.
func NewEngineService(calculator bot.MoveCalculator) EngineService {
	return &engineService{calculator: calculator}
}

func (s *engineService) Evaluate(ctx context.Context, req *models.EvaluateRequest) (*models.EvaluateResponse, error) {
	board, err := game.ParseBoard(req.Board)
	if err != nil {
		return nil, errors.Join(ErrBadInput, err)
	}
	outcome := game.Evaluate(board)
	return &models.EvaluateResponse{
		Status:     outcome.Status,
		Winner:     outcome.Winner,
		Next:       game.NextTurn(board),
		EmptyCells: game.EmptyCells(board),
	}, nil
}

func (s *engineService) SelectMove(ctx context.Context, req *models.MoveRequest) (*models.MoveResponse, error) {
	board, err := game.ParseBoard(req.Board)
	if err != nil {
		return nil, errors.Join(ErrBadInput, err)
	}
	mark, err := game.ParseMark(req.Player)
	if err != nil {
		return nil, errors.Join(ErrBadInput, err)
	}
	difficulty, err := bot.ParseDifficulty(req.Difficulty)
	if err != nil {
		return nil, errors.Join(ErrBadInput, err)
	}

	index, ok, err := s.calculator.CalculateNextMove(ctx, board, mark, difficulty)
	if err != nil {
		if errors.Is(err, bot.ErrInvalidPlayer) || errors.Is(err, bot.ErrUnknownDifficulty) {
			return nil, errors.Join(ErrBadInput, err)
		}
		return nil, err
	}
	if !ok {
		return &models.MoveResponse{}, nil
	}
	return &models.MoveResponse{Index: &index, Found: true}, nil
}

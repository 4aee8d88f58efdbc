package controller

import (
	"net/http"

	"ctchen222/tictactoe-ai/internal/api/models"
	"ctchen222/tictactoe-ai/internal/api/response"
	"ctchen222/tictactoe-ai/internal/api/service"

	"github.com/gin-gonic/gin"
)

var badInput = response.Status{Err: service.ErrBadInput, Code: http.StatusBadRequest}

// EngineController serves stateless board evaluation and move selection.
type EngineController struct {
	engineService service.EngineService
}

func NewEngineController(engineService service.EngineService) *EngineController {
	return &EngineController{engineService: engineService}
}

// Evaluate reports the outcome of a posted board.
func (ec *EngineController) Evaluate(c *gin.Context) {
	var req models.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	res, err := ec.engineService.Evaluate(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, badInput)
		return
	}
	response.SuccessResponse(c, res)
}

// Move picks the computer's reply for a posted board.
func (ec *EngineController) Move(c *gin.Context) {
	var req models.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	res, err := ec.engineService.SelectMove(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, badInput)
		return
	}
	response.SuccessResponse(c, res)
}

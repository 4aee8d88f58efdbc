package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Status pairs a sentinel error with the HTTP status it is reported under.
type Status struct {
	Err  error
	Code int
}

// FromError reports err under the code of the first Status whose Err it
// matches with errors.Is. Anything unmatched is a 500.
func FromError(c *gin.Context, err error, statuses ...Status) {
	code := http.StatusInternalServerError
	for _, s := range statuses {
		if errors.Is(err, s.Err) {
			code = s.Code
			break
		}
	}
	ErrorResponse(c, code, err.Error())
}

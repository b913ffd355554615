// Package response writes the status envelope shared by every JSON route:
// {"status":"Success","resData":...} or {"status":"Failure","resData":"<message>"}.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "Success"
	StatusFailure = "Failure"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Status  string      `json:"status"`
	ResData interface{} `json:"resData"`
}

// OK writes a 200 Success envelope.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Status: StatusSuccess, ResData: data})
}

// Fail writes a Failure envelope with the given status code.
func Fail(c *gin.Context, code int, msg string) {
	c.JSON(code, Envelope{Status: StatusFailure, ResData: msg})
}

// Abort writes a Failure envelope and stops the handler chain.
func Abort(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, Envelope{Status: StatusFailure, ResData: msg})
}

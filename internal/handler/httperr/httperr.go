package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the error envelope the error middleware renders. Status is
// carried out-of-band so the body only exposes the message and detail.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
		Detail  any    `json:"detail,omitempty"`
	} `json:"error"`
}

func New(status int, message string) Response {
	var resp Response
	resp.Status = status
	resp.Error.Message = message
	return resp
}

func (r Response) WithDetail(detail any) Response {
	r.Error.Detail = detail
	return r
}

// AbortWithError records the response on the gin error stack for the error
// middleware to render. Panics on nil err: callers must pass the cause.
func AbortWithError(c *gin.Context, resp Response, err error) {
	if err == nil {
		panic("httperr.AbortWithError called with nil error")
	}
	c.Abort()
	_ = c.Error(err).SetType(gin.ErrorTypePublic).SetMeta(resp)
}

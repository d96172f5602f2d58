package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GenerateResponse is the wire shape of POST /generate. The certificado field
// carries the public URL of the uploaded PDF on success, the error field the
// failure message otherwise.
type GenerateResponse struct {
	Ok          bool   `json:"ok"`
	Certificado string `json:"certificado,omitempty"`
	Error       string `json:"error,omitempty"`
}

func ResponseCertificate(ctx *gin.Context, url string) {
	ctx.JSON(http.StatusOK, GenerateResponse{
		Ok:          true,
		Certificado: url,
	})
	ctx.Abort()
}

func ResponseFailed(ctx *gin.Context, code int, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}

	ctx.JSON(code, GenerateResponse{
		Ok:    false,
		Error: msg,
	})
	ctx.Abort()
}

func ResponseFailedMessage(ctx *gin.Context, code int, message string) {
	ctx.JSON(code, GenerateResponse{
		Ok:    false,
		Error: message,
	})
	ctx.Abort()
}

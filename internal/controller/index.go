package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type IndexController struct {
	*baseController
}

func (ic IndexController) Index(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"service": "summit-cert-api",
		"status":  "ok",
	})
}

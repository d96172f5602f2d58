package route

import (
	"github.com/gin-gonic/gin"
	"github.com/metricasboss/summit-cert-api/internal/controller"
)

func Certificate(r *gin.Engine, certificateController *controller.CertificateController) {
	r.POST("/generate", certificateController.Generate)
	r.GET("/preview", certificateController.Preview)
}

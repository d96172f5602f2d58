package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/metricasboss/summit-cert-api/internal/certificate"
	"github.com/metricasboss/summit-cert-api/internal/util"
)

type CertificateController struct {
	*baseController
}

// generatePayload carries the participant's form-field answers, keyed by the
// human readable labels the form uses.
type generatePayload struct {
	Name  string `json:"Nome completo"`
	Email string `json:"Seu e-mail"`
}

type generateRequest struct {
	Payload *generatePayload `json:"payload" binding:"required"`
	ID      string           `json:"id" binding:"required,strNotEmpty"`
}

// validKey rejects ids that would escape the fixed storage prefix when used
// verbatim as the object key. The legacy service accepted anything here.
func validKey(id string) bool {
	return !strings.ContainsAny(id, "/\\") && !strings.Contains(id, "..")
}

func (cc CertificateController) Generate(ctx *gin.Context) {
	var req generateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			detail := util.FirstValidationError(err, map[string]string{"Payload": "payload", "ID": "id"})
			cc.app.Logger.Warnw("certificate generate request missing fields", "detail", detail)
			util.ResponseFailedMessage(ctx, http.StatusBadRequest, "Payload ou ID faltando")
			return
		}

		// Body never made it past JSON decoding.
		cc.app.Logger.Warnw("certificate generate request with malformed body", "error", err)
		util.ResponseFailedMessage(ctx, http.StatusBadRequest, "Invalid JSON")
		return
	}

	cc.app.Logger.Infow("received certificate generate request", "id", req.ID)

	name := strings.TrimSpace(req.Payload.Name)
	email := strings.TrimSpace(req.Payload.Email)
	if name == "" || email == "" {
		cc.app.Logger.Warnw("certificate generate request missing name or email", "id", req.ID)
		util.ResponseFailedMessage(ctx, http.StatusBadRequest, "Nome ou e-mail faltando no payload")
		return
	}

	if !validKey(req.ID) {
		cc.app.Logger.Warnw("certificate generate request with unsafe id", "id", req.ID)
		util.ResponseFailedMessage(ctx, http.StatusBadRequest, "ID inválido")
		return
	}

	url, err := cc.app.Certificate.Generate(ctx.Request.Context(), certificate.Request{
		ID:    req.ID,
		Name:  name,
		Email: email,
	})
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, err)
		return
	}

	util.ResponseCertificate(ctx, url)
}

func (cc CertificateController) Preview(ctx *gin.Context) {
	name := ctx.Query("name")
	if name == "" {
		ctx.String(http.StatusBadRequest, "Nome faltando para o preview")
		return
	}

	markup, err := cc.app.Certificate.Preview(name)
	if err != nil {
		ctx.String(http.StatusInternalServerError, "Erro ao gerar o preview do certificado")
		return
	}

	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(markup))
}

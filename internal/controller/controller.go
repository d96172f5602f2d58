package controller

import (
	appcontext "github.com/metricasboss/summit-cert-api/internal/app_context"
)

type baseController struct {
	app *appcontext.Application
}

type Controller struct {
	Index       *IndexController
	Certificate *CertificateController
}

func newBaseController(app *appcontext.Application) *baseController {
	return &baseController{app: app}
}

func NewController(app *appcontext.Application) *Controller {
	bc := newBaseController(app)

	return &Controller{
		Index:       &IndexController{baseController: bc},
		Certificate: &CertificateController{baseController: bc},
	}
}

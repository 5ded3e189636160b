package routes

import (
	"github.com/gofiber/fiber/v2"
	certificate_controller "github.com/sunthewhat/easy-cert-form/api/controllers/certificate"
)

func Init(router fiber.Router, certificateCtrl *certificate_controller.CertificateController) {
	SetupFormRoutes(router, certificateCtrl)

	api := router.Group("api")
	SetupCertificateRoutes(api, certificateCtrl)
}

package routes

import (
	"github.com/gofiber/fiber/v2"
	certificate_controller "github.com/sunthewhat/easy-cert-form/api/controllers/certificate"
)

func SetupFormRoutes(router fiber.Router, ctrl *certificate_controller.CertificateController) {
	router.Get("/", ctrl.Form)
	router.Post("/", ctrl.Generate)
}

func SetupCertificateRoutes(router fiber.Router, ctrl *certificate_controller.CertificateController) {
	certificateGroup := router.Group("certificate")

	certificateGroup.Post("generate", ctrl.GenerateAPI)
}

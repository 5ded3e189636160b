package certificate_controller

import (
	"bytes"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/easy-cert-form/type/payload"
)

type formView struct {
	Error   string
	Name    string
	College string
	Event   string
}

func (ctrl *CertificateController) Form(c *fiber.Ctx) error {
	return renderForm(c, formView{})
}

// renderForm always answers 200; problems are shown inline above the form.
func renderForm(c *fiber.Ctx, view formView) error {
	var buf bytes.Buffer
	if err := formTemplate.Execute(&buf, view); err != nil {
		slog.Error("Failed to render certificate form", "error", err)
		return err
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}

func viewWithError(body *payload.GenerateCertificatePayload, msg string) formView {
	return formView{
		Error:   msg,
		Name:    body.Name,
		College: body.College,
		Event:   body.Event,
	}
}

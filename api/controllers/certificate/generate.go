package certificate_controller

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/easy-cert-form/internal/generator"
	"github.com/sunthewhat/easy-cert-form/type/payload"
	"github.com/sunthewhat/easy-cert-form/type/response"
)

// Generate handles the HTML form submission.
func (ctrl *CertificateController) Generate(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return renderForm(c, viewWithError(body, "Failed to parse form"))
	}

	result, err := ctrl.generator.Generate(c.UserContext(), buildRequest(c, body))
	if err != nil {
		var genErr *generator.Error
		if errors.As(err, &genErr) {
			return renderForm(c, viewWithError(body, genErr.UserMessage()))
		}
		slog.Error("Certificate Generate failed", "error", err)
		return renderForm(c, viewWithError(body, "Error: "+err.Error()))
	}

	return sendResult(c, result)
}

// GenerateAPI is Generate with the JSON error envelope.
func (ctrl *CertificateController) GenerateAPI(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}

	result, err := ctrl.generator.Generate(c.UserContext(), buildRequest(c, body))
	if err != nil {
		switch generator.KindOf(err) {
		case generator.KindValidation, generator.KindUnsupportedFileType, generator.KindParse:
			return response.SendFailed(c, err.Error())
		default:
			slog.Error("Certificate GenerateAPI failed", "error", err)
			return response.SendInternalError(c, err)
		}
	}

	return sendResult(c, result)
}

func parseBody(c *fiber.Ctx) (*payload.GenerateCertificatePayload, error) {
	body := new(payload.GenerateCertificatePayload)
	if len(c.Body()) == 0 {
		return body, nil
	}

	if err := c.BodyParser(body); err != nil {
		slog.Warn("Certificate request body parse failed", "error", err, "contentType", c.Get(fiber.HeaderContentType))
		return body, err
	}
	return body, nil
}

func buildRequest(c *fiber.Ctx, body *payload.GenerateCertificatePayload) generator.Request {
	req := generator.Request{
		Name:    body.Name,
		College: body.College,
		Event:   body.Event,
	}

	file, err := c.FormFile("file")
	if err != nil || file.Filename == "" {
		return req
	}

	req.Sheet = &generator.Upload{
		Filename: file.Filename,
		Save: func(dst string) error {
			return c.SaveFile(file, dst)
		},
	}
	return req
}

func sendResult(c *fiber.Ctx, result *generator.Result) error {
	c.Set("X-Certificate-Count", strconv.Itoa(len(result.Files)))
	c.Set(fiber.HeaderContentType, result.ContentType)
	return c.Download(result.Path, result.Filename)
}

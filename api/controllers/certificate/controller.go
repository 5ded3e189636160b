package certificate_controller

import (
	"embed"
	"html/template"

	"github.com/sunthewhat/easy-cert-form/internal/generator"
)

//go:embed templates/index.html
var templateFS embed.FS

var formTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// CertificateController handles certificate-related HTTP requests
type CertificateController struct {
	generator generator.IGenerator
}

// NewCertificateController creates a new certificate controller with injected dependencies
func NewCertificateController(gen generator.IGenerator) *CertificateController {
	return &CertificateController{
		generator: gen,
	}
}

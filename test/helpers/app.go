package helpers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/sunthewhat/easy-cert-form/api"
	"github.com/sunthewhat/easy-cert-form/internal/generator"
	"github.com/sunthewhat/easy-cert-form/internal/renderer"
	"github.com/sunthewhat/easy-cert-form/type/shared"
)

// TestApp is the full HTTP stack wired to a real renderer writing into temp directories
type TestApp struct {
	App       *fiber.App
	OutputDir string
	UploadDir string
}

// SetupTestApp builds the app the way main does, with optional extra generator options
func SetupTestApp(t *testing.T, template shared.TemplateConfig, archiver generator.Archiver) *TestApp {
	outputDir := t.TempDir()
	uploadDir := t.TempDir()

	registry := prometheus.NewRegistry()
	metrics, err := generator.NewMetrics(registry)
	require.NoError(t, err)

	signer, err := renderer.NewCertificateSigner(shared.SigningConfig{})
	require.NoError(t, err)

	gen := generator.New(renderer.NewRenderer(template, signer), generator.Options{
		OutputDir: outputDir,
		UploadDir: uploadDir,
		Archiver:  archiver,
		Metrics:   metrics,
	})

	app, err := api.NewApp(api.Dependencies{
		Generator: gen,
		Registry:  registry,
		BodyLimit: 4 * 1024 * 1024,
	})
	require.NoError(t, err)

	return &TestApp{
		App:       app,
		OutputDir: outputDir,
		UploadDir: uploadDir,
	}
}

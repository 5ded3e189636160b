package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sunthewhat/easy-cert-form/common/util"
	"github.com/sunthewhat/easy-cert-form/internal/renderer"
	"github.com/sunthewhat/easy-cert-form/internal/sheet"
	"github.com/sunthewhat/easy-cert-form/type/shared"
)

const ZipName = "certificates.zip"

// CertificateRenderer draws one certificate to a file.
type CertificateRenderer interface {
	Render(cert shared.CertificateRequest, outputPath string) error
}

// Archiver keeps a copy of delivered files in object storage.
type Archiver interface {
	Archive(ctx context.Context, path string, objectName string, contentType string) error
}

// Mailer sends a rendered certificate to its recipient.
type Mailer interface {
	SendCertificate(to string, name string, path string) error
}

// IGenerator is the request handler's view of the pipeline.
type IGenerator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}

// Upload is a spreadsheet supplied with the request.
type Upload struct {
	Filename string
	// Save stores the upload at dst. Nil when Filename already names a file on disk.
	Save func(dst string) error
}

// Request carries the form fields. Name wins over Sheet when both are present.
type Request struct {
	Name    string
	College string
	Event   string
	Sheet   *Upload
}

type Result struct {
	// Files lists the rendered PDFs in input order, without duplicates.
	Files []string
	// Path is the file to deliver: the only PDF, or the zip of all of them.
	Path        string
	Filename    string
	ContentType string
	// ArchiveObject is the object name in storage, empty when not archived.
	ArchiveObject string
}

func (r *Result) IsZip() bool {
	return len(r.Files) > 1
}

type Options struct {
	OutputDir string
	UploadDir string
	Archiver  Archiver
	Mailer    Mailer
	Metrics   *Metrics
}

type Generator struct {
	renderer  CertificateRenderer
	outputDir string
	uploadDir string
	archiver  Archiver
	mailer    Mailer
	metrics   *Metrics
}

var _ IGenerator = (*Generator)(nil)

type rendered struct {
	request shared.CertificateRequest
	path    string
}

func New(r CertificateRenderer, opts Options) *Generator {
	return &Generator{
		renderer:  r,
		outputDir: opts.OutputDir,
		uploadDir: opts.UploadDir,
		archiver:  opts.Archiver,
		mailer:    opts.Mailer,
		metrics:   opts.Metrics,
	}
}

// Generate renders every record in req and returns the file to deliver.
// Failures are *Error values; already written PDFs are left in place.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	result, err := g.generate(ctx, req)
	if err != nil {
		g.metrics.requestDone(KindOf(err).String())
		return nil, err
	}

	if result.IsZip() {
		g.metrics.requestDone("zip")
	} else {
		g.metrics.requestDone("pdf")
	}
	return result, nil
}

func (g *Generator) generate(ctx context.Context, req Request) (*Result, error) {
	requests, err := g.collect(req)
	if err != nil {
		return nil, err
	}

	outputs, err := g.renderAll(requests)
	if err != nil {
		return nil, err
	}

	result, err := g.deliver(outputs)
	if err != nil {
		return nil, err
	}

	g.archive(ctx, result)
	g.mail(outputs)

	slog.Info("Certificate Generate completed",
		"requested", len(requests),
		"files", len(result.Files),
		"delivered", result.Filename)

	return result, nil
}

func (g *Generator) collect(req Request) ([]shared.CertificateRequest, error) {
	name := strings.TrimSpace(req.Name)
	college := strings.TrimSpace(req.College)
	event := strings.TrimSpace(req.Event)

	if name != "" {
		return []shared.CertificateRequest{{Name: name, College: college, Event: event}}, nil
	}

	if req.Sheet == nil || req.Sheet.Filename == "" {
		return nil, validationError(MsgNoInput)
	}

	if !sheet.IsAllowed(req.Sheet.Filename) {
		slog.Warn("Certificate Generate rejected upload", "filename", req.Sheet.Filename)
		return nil, unsupportedFileType(util.Extension(req.Sheet.Filename))
	}

	path, err := g.store(req.Sheet)
	if err != nil {
		return nil, parseError(err)
	}

	table, err := sheet.ReadFile(path)
	if err != nil {
		slog.Warn("Certificate Generate spreadsheet unreadable", "filename", req.Sheet.Filename, "error", err)
		return nil, parseError(err)
	}

	requests, err := table.Requests(sheet.Defaults{College: college, Event: event})
	if errors.Is(err, sheet.ErrMissingNameColumn) {
		return nil, validationError(MsgMissingNameColumn)
	}
	if err != nil {
		return nil, parseError(err)
	}

	slog.Info("Certificate Generate parsed spreadsheet", "filename", req.Sheet.Filename, "rows", len(table.Rows), "records", len(requests))
	return requests, nil
}

// store saves the upload under the upload directory and returns where it lives.
func (g *Generator) store(upload *Upload) (string, error) {
	if upload.Save == nil {
		return upload.Filename, nil
	}

	// the stored name must keep the extension the reader dispatches on
	ext := util.Extension(upload.Filename)
	base := util.SecureFilename(upload.Filename)
	if util.Extension(base) != ext {
		base = "upload." + ext
	}
	dst := filepath.Join(g.uploadDir, fmt.Sprintf("%s_%s", uuid.New().String(), base))

	if err := upload.Save(dst); err != nil {
		return "", fmt.Errorf("failed to save upload: %w", err)
	}
	return dst, nil
}

func (g *Generator) renderAll(requests []shared.CertificateRequest) ([]rendered, error) {
	outputs := make([]rendered, 0, len(requests))
	for _, request := range requests {
		path := filepath.Join(g.outputDir, util.CertificateFileName(request.Name))

		if err := g.renderer.Render(request, path); err != nil {
			g.metrics.certificateRendered(false)
			slog.Error("Certificate Render failed", "name", request.Name, "path", path, "error", err)
			return nil, renderError(err)
		}
		g.metrics.certificateRendered(true)

		outputs = append(outputs, rendered{request: request, path: path})
	}
	return outputs, nil
}

func (g *Generator) deliver(outputs []rendered) (*Result, error) {
	files := make([]string, 0, len(outputs))
	seen := make(map[string]bool, len(outputs))
	for _, output := range outputs {
		if seen[output.path] {
			continue
		}
		seen[output.path] = true
		files = append(files, output.path)
	}

	switch len(files) {
	case 0:
		return nil, validationError(MsgNothingGenerated)
	case 1:
		return &Result{
			Files:       files,
			Path:        files[0],
			Filename:    filepath.Base(files[0]),
			ContentType: "application/pdf",
		}, nil
	}

	zipPath := filepath.Join(g.outputDir, ZipName)
	if err := renderer.Bundle(files, zipPath); err != nil {
		slog.Error("Certificate Bundle failed", "files", len(files), "error", err)
		return nil, renderError(err)
	}

	return &Result{
		Files:       files,
		Path:        zipPath,
		Filename:    ZipName,
		ContentType: "application/zip",
	}, nil
}

func (g *Generator) archive(ctx context.Context, result *Result) {
	if g.archiver == nil {
		return
	}

	objectName := fmt.Sprintf("%s/%s_%s", time.Now().Format("2006-01-02"), uuid.New().String(), result.Filename)
	if err := g.archiver.Archive(ctx, result.Path, objectName, result.ContentType); err != nil {
		slog.Warn("Certificate archive upload failed", "object", objectName, "error", err)
		return
	}
	result.ArchiveObject = objectName
}

func (g *Generator) mail(outputs []rendered) {
	if g.mailer == nil {
		return
	}

	sent, failed := 0, 0
	for _, output := range outputs {
		if output.request.Email == "" {
			continue
		}
		if err := util.ValidateStruct(output.request); err != nil {
			slog.Warn("Certificate mail skipped", "name", output.request.Name, "reason", util.GetValidationErrors(err))
			failed++
			continue
		}
		if err := g.mailer.SendCertificate(output.request.Email, output.request.Name, output.path); err != nil {
			slog.Warn("Certificate mail failed", "email", output.request.Email, "name", output.request.Name, "error", err)
			failed++
			continue
		}
		sent++
	}

	if sent > 0 || failed > 0 {
		slog.Info("Certificate mail completed", "sent", sent, "failed", failed)
	}
}

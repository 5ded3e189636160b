package renderer

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"os"

	"github.com/jung-kurt/gofpdf"
	"github.com/sunthewhat/easy-cert-form/type/shared"
)

const (
	fontFamily = "Times"
	fontStyle  = "B"
)

// Page fill used when no background image is available.
var fallbackFill = struct{ R, G, B int }{R: 242, G: 242, B: 255}

// Renderer draws certificates on a landscape A4 page measured in points.
type Renderer struct {
	template shared.TemplateConfig
	signer   *CertificateSigner
}

// slot is a signature image position with a bottom-left origin, matching the page layout.
type slot struct {
	role string
	path string
	x, y float64
	w, h float64
}

func NewRenderer(template shared.TemplateConfig, signer *CertificateSigner) *Renderer {
	if signer == nil {
		signer = &CertificateSigner{enabled: false}
	}
	return &Renderer{
		template: template,
		signer:   signer,
	}
}

// Render draws cert and writes the PDF to outputPath, replacing any existing file.
func (r *Renderer) Render(cert shared.CertificateRequest, outputPath string) error {
	data, err := r.RenderBytes(cert)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write certificate %s: %w", outputPath, err)
	}
	return nil
}

func (r *Renderer) RenderBytes(cert shared.CertificateRequest) ([]byte, error) {
	pdf := gofpdf.New("L", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("easy-cert-form", true)
	pdf.SetTitle(cert.Name+" certificate", true)
	pdf.AddPage()

	width, height := pdf.GetPageSize()
	translate := pdf.UnicodeTranslatorFromDescriptor("")

	if err := r.drawBackground(pdf, width, height); err != nil {
		return nil, err
	}

	pdf.SetTextColor(0, 0, 0)

	name := translate(cert.Name)
	drawFitted(pdf, name, nameFit(width))
	drawCentred(pdf, width/1.75, height-277.5, name)

	if cert.Event != "" {
		event := translate(cert.Event)
		drawFitted(pdf, event, eventFit(width))
		drawCentred(pdf, width/4, height-205, event)
	}

	if cert.College != "" {
		college := translate(cert.College)
		drawFitted(pdf, college, collegeFit(width))
		drawRight(pdf, width-350, height-(height/2-50), college)
	}

	r.drawSignatures(pdf, width, height)

	if pdf.Err() {
		return nil, fmt.Errorf("failed to draw certificate: %w", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	data := buf.Bytes()
	if r.signer.IsEnabled() {
		signed, err := r.signer.SignPDF(data, cert.Name)
		if err != nil {
			slog.Warn("Failed to sign PDF, returning unsigned version", "error", err, "name", cert.Name)
		} else if len(signed) > 0 {
			data = signed
		}
	}

	return data, nil
}

func (r *Renderer) drawBackground(pdf *gofpdf.Fpdf, width, height float64) error {
	path := r.template.BackgroundImagePath

	present, err := fileExists(path)
	if err != nil {
		return fmt.Errorf("failed to check background %s: %w", path, err)
	}
	if !present {
		pdf.SetFillColor(fallbackFill.R, fallbackFill.G, fallbackFill.B)
		pdf.Rect(0, 0, width, height, "F")
		return nil
	}

	data, imageType, err := readImage(path)
	if err != nil {
		return fmt.Errorf("failed to load background: %w", err)
	}

	options := gofpdf.ImageOptions{ImageType: imageType}
	info := pdf.RegisterImageOptionsReader(path, options, bytes.NewReader(data))
	if pdf.Err() {
		return fmt.Errorf("failed to load background %s: %w", path, pdf.Error())
	}

	imgWidth, imgHeight := info.Width(), info.Height()
	if imgWidth <= 0 || imgHeight <= 0 {
		return fmt.Errorf("background %s has no size", path)
	}

	scale := min(width/imgWidth, height/imgHeight)
	newWidth, newHeight := imgWidth*scale, imgHeight*scale
	x := (width - newWidth) / 2
	y := (height - newHeight) / 2

	pdf.ImageOptions(path, x, y, newWidth, newHeight, false, options, 0, "")
	return nil
}

func (r *Renderer) signatureSlots(width float64) []slot {
	return []slot{
		{role: "hod", path: r.template.HodSignaturePath, x: width/4 - 145, y: 70, w: 140, h: 20},
		{role: "principal", path: r.template.PrincipalSignaturePath, x: width/2 - 100, y: 70, w: 150, h: 20},
		{role: "director", path: r.template.DirectorSignaturePath, x: 3*width/4 - 55, y: 70, w: 150, h: 30},
	}
}

// drawSignatures draws every configured slot. Unreadable images are skipped so a bad signature
// file never costs the whole certificate.
func (r *Renderer) drawSignatures(pdf *gofpdf.Fpdf, width, height float64) {
	for _, s := range r.signatureSlots(width) {
		if s.path == "" {
			continue
		}

		data, imageType, err := readImage(s.path)
		if err != nil {
			slog.Warn("Signature image skipped", "slot", s.role, "path", s.path, "error", err)
			continue
		}

		options := gofpdf.ImageOptions{ImageType: imageType}
		pdf.RegisterImageOptionsReader(s.path, options, bytes.NewReader(data))
		if pdf.Err() {
			slog.Warn("Signature image skipped", "slot", s.role, "path", s.path, "error", pdf.Error())
			pdf.ClearError()
			continue
		}
		pdf.ImageOptions(s.path, s.x, height-s.y-s.h, s.w, s.h, false, options, 0, "")
	}
}

func drawFitted(pdf *gofpdf.Fpdf, text string, fit Fit) {
	size := FitFontSize(func(size float64) float64 {
		pdf.SetFont(fontFamily, fontStyle, size)
		return pdf.GetStringWidth(text)
	}, fit)
	pdf.SetFont(fontFamily, fontStyle, size)
}

// drawCentred and drawRight take the baseline y measured from the top of the page.
func drawCentred(pdf *gofpdf.Fpdf, x, y float64, text string) {
	pdf.Text(x-pdf.GetStringWidth(text)/2, y, text)
}

func drawRight(pdf *gofpdf.Fpdf, x, y float64, text string) {
	pdf.Text(x-pdf.GetStringWidth(text), y, text)
}

// readImage loads an image file and reports its gofpdf type, detected from content.
func readImage(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	switch format {
	case "jpeg":
		return data, "jpg", nil
	case "png", "gif":
		return data, format, nil
	default:
		return nil, "", fmt.Errorf("unsupported image format %q in %s", format, path)
	}
}

func fileExists(path string) (bool, error) {
	if path == "" {
		return false, nil
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

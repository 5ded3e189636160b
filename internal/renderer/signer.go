package renderer

import (
	"bytes"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"log/slog"
	"os"
	"time"

	digitorus_pdf "github.com/digitorus/pdf"
	"github.com/digitorus/pdfsign/sign"
	"github.com/sunthewhat/easy-cert-form/type/shared"
)

type CertificateSigner struct {
	certificate *x509.Certificate
	privateKey  *rsa.PrivateKey
	enabled     bool
}

func NewCertificateSigner(cfg shared.SigningConfig) (*CertificateSigner, error) {
	if !cfg.Enabled {
		slog.Info("PDF signing disabled in configuration")
		return &CertificateSigner{enabled: false}, nil
	}

	if cfg.CertPath == "" || cfg.KeyPath == "" {
		return nil, fmt.Errorf("signing enabled but certificate or key path not configured")
	}

	certificate, err := loadCertificate(cfg.CertPath)
	if err != nil {
		return nil, err
	}

	privateKey, err := loadPrivateKey(cfg.KeyPath)
	if err != nil {
		return nil, err
	}

	slog.Info("Certificate signer initialized successfully",
		"cert_subject", certificate.Subject.String(),
		"cert_expiry", certificate.NotAfter)

	return &CertificateSigner{
		certificate: certificate,
		privateKey:  privateKey,
		enabled:     true,
	}, nil
}

func loadCertificate(path string) (*x509.Certificate, error) {
	block, err := readPEM(path)
	if err != nil {
		return nil, err
	}

	certificate, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse certificate %s: %w", path, err)
	}
	return certificate, nil
}

// loadPrivateKey accepts PKCS#1 and PKCS#8 encoded RSA keys.
func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	block, err := readPEM(path)
	if err != nil {
		return nil, err
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key %s: %w", path, err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key %s is not RSA", path)
	}
	return key, nil
}

func readPEM(path string) (*pem.Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("no PEM block in %s", path)
	}
	return block, nil
}

// SignPDF returns pdfBytes carrying a certification signature. The input is returned unchanged
// when signing is disabled.
func (s *CertificateSigner) SignPDF(pdfBytes []byte, recipient string) (signed []byte, err error) {
	if !s.enabled {
		return pdfBytes, nil
	}
	if s.privateKey == nil || s.certificate == nil {
		return pdfBytes, fmt.Errorf("signer is missing its key or certificate")
	}
	if len(pdfBytes) == 0 {
		return pdfBytes, fmt.Errorf("empty PDF bytes")
	}

	signData := sign.SignData{
		Signature: sign.SignDataSignature{
			Info: sign.SignDataSignatureInfo{
				Name:     "Easy Cert Form",
				Location: "Certificate Generator",
				Reason:   fmt.Sprintf("Certificate issued to %s", recipient),
				Date:     time.Now(),
			},
			CertType:   sign.CertificationSignature,
			DocMDPPerm: sign.AllowFillingExistingFormFieldsAndSignaturesPerms,
		},
		Signer:      s.privateKey,
		Certificate: s.certificate,
	}

	// pdfsign panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			signed, err = pdfBytes, fmt.Errorf("panic during PDF signing: %v", r)
		}
	}()

	inputReader := bytes.NewReader(pdfBytes)
	pdfReader, err := digitorus_pdf.NewReader(inputReader, int64(len(pdfBytes)))
	if err != nil {
		return pdfBytes, fmt.Errorf("failed to read PDF for signing: %w", err)
	}

	var outputBuffer bytes.Buffer
	if err := sign.Sign(inputReader, &outputBuffer, pdfReader, int64(len(pdfBytes)), signData); err != nil {
		return pdfBytes, fmt.Errorf("failed to sign PDF: %w", err)
	}
	if outputBuffer.Len() == 0 {
		return pdfBytes, fmt.Errorf("PDF signing produced empty output")
	}

	slog.Debug("PDF signed", "recipient", recipient, "original_size", len(pdfBytes), "signed_size", outputBuffer.Len())
	return outputBuffer.Bytes(), nil
}

func (s *CertificateSigner) IsEnabled() bool {
	return s != nil && s.enabled
}

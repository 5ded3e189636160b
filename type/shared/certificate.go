package shared

// CertificateRequest is one record to render. Only Name is required.
type CertificateRequest struct {
	Name    string `json:"name" validate:"required"`
	College string `json:"college"`
	Event   string `json:"event"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
}

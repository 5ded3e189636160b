package payload

// GenerateCertificatePayload is the form (or JSON body) of a generate request.
// The spreadsheet travels separately as the multipart "file" field.
type GenerateCertificatePayload struct {
	Name    string `json:"name" form:"name"`
	College string `json:"college" form:"college"`
	Event   string `json:"event" form:"event"`
}

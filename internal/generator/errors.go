package generator

import (
	"errors"
	"fmt"
)

// Kind says which stage rejected a request.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindUnsupportedFileType
	KindParse
	KindRender
)

const (
	MsgMissingNameColumn = "Excel/CSV must have a 'Name' column."
	MsgNoInput           = "Please enter a name or upload a valid Excel/CSV file."
	MsgNothingGenerated  = "No certificates generated."
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnsupportedFileType:
		return "unsupported_file_type"
	case KindParse:
		return "parse"
	case KindRender:
		return "render"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage is the text shown on the form. Render failures echo the raw error.
func (e *Error) UserMessage() string {
	if e.Kind == KindRender {
		return "Error: " + e.Message
	}
	return e.Message
}

// KindOf reports the Kind of err, or KindUnknown when err did not come from this package.
func KindOf(err error) Kind {
	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	return KindUnknown
}

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func unsupportedFileType(ext string) *Error {
	if ext == "" {
		return &Error{Kind: KindUnsupportedFileType, Message: "Unsupported file type: upload a .xls, .xlsx or .csv file."}
	}
	return &Error{
		Kind:    KindUnsupportedFileType,
		Message: fmt.Sprintf("Unsupported file type %q: upload a .xls, .xlsx or .csv file.", "."+ext),
	}
}

func parseError(err error) *Error {
	return &Error{Kind: KindParse, Message: fmt.Sprintf("Could not read the uploaded spreadsheet: %v", err), Err: err}
}

func renderError(err error) *Error {
	return &Error{Kind: KindRender, Message: err.Error(), Err: err}
}

package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reportpilot/internal/models"
)

// ErrUnsupportedFormat is returned for output formats outside the
// format table.
var ErrUnsupportedFormat = errors.New("unsupported output format")

type formatSpec struct {
	Template  string
	MIMEType  string
	Extension string
}

// Adding an output format means adding a row here, not a branch.
var formatTable = map[models.OutputFormat]formatSpec{
	models.FormatPDF:       {Template: "report_template.html", MIMEType: "application/pdf", Extension: "pdf"},
	models.FormatHTMLEmail: {Template: "email_template.html", MIMEType: "text/html", Extension: "html"},
}

func formatFor(format models.OutputFormat) (formatSpec, error) {
	spec, ok := formatTable[format]
	if !ok {
		return formatSpec{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return spec, nil
}

// Filename derives the output filename from the design name: anything
// outside [A-Za-z0-9 _] is stripped, spaces become underscores, and
// the format extension is appended.
func Filename(designName string, format models.OutputFormat) (string, error) {
	spec, err := formatFor(format)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, r := range designName {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ', r == '_':
			b.WriteRune(r)
		}
	}
	name := strings.TrimRight(b.String(), " ")
	name = strings.ReplaceAll(name, " ", "_")
	return name + "." + spec.Extension, nil
}

package report

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/reportpilot/internal/logger"
	"github.com/reportpilot/internal/models"
	"github.com/reportpilot/internal/query"
	"github.com/reportpilot/internal/store"
)

// Output is the opaque report contract handed to the HTTP layer and
// the email composer.
type Output struct {
	Bytes    []byte
	MIMEType string
	Filename string
}

// Pipeline turns a stored design plus filter values into a rendered
// document. It has no side effects beyond the external query.
type Pipeline struct {
	store     *store.Store
	executor  *query.Executor
	pdf       PDFConverter
	templates map[string]*template.Template
	log       *logger.Logger
}

var templateFuncs = template.FuncMap{
	"cell": func(v interface{}) string { return cellString(v) },
	"money": func(v interface{}) string {
		if n, ok := toFloat(v); ok {
			return fmt.Sprintf("%.2f", n)
		}
		return ""
	},
}

// NewPipeline loads the per-format templates from templatesDir/reports.
func NewPipeline(st *store.Store, exec *query.Executor, pdf PDFConverter, templatesDir string, log *logger.Logger) (*Pipeline, error) {
	templates := make(map[string]*template.Template)
	for _, spec := range formatTable {
		if _, ok := templates[spec.Template]; ok {
			continue
		}
		path := filepath.Join(templatesDir, "reports", spec.Template)
		tmpl, err := template.New(spec.Template).Funcs(templateFuncs).ParseFiles(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load report template %s: %v", spec.Template, err)
		}
		templates[spec.Template] = tmpl
	}
	return &Pipeline{
		store:     st,
		executor:  exec,
		pdf:       pdf,
		templates: templates,
		log:       log,
	}, nil
}

type templateData struct {
	*ReportData
	Branding   models.BrandingConfig
	LogoPath   string
	ChartImage template.URL
}

// Build executes the design's repository query with the given filter
// values and renders the configured output format.
func (p *Pipeline) Build(ctx context.Context, design *models.Design, filterValues map[string]string) (*Output, error) {
	cfg, err := design.Config()
	if err != nil {
		return nil, fmt.Errorf("design %d config: %v", design.ID, err)
	}

	// Filter values are matched positionally to the repository
	// placeholders; missing values pass through as NULL.
	params := make([]interface{}, len(cfg.Filters))
	for i, f := range cfg.Filters {
		if v, ok := filterValues[f.Name]; ok && v != "" {
			params[i] = v
		}
	}

	result, err := p.executor.Execute(ctx, design.RepositoryID, params)
	if err != nil {
		return nil, err
	}

	data, err := shape(design.Name, cfg, result)
	if err != nil {
		return nil, err
	}

	tdata := templateData{ReportData: data}
	if cfg.Branding != nil {
		tdata.Branding = *cfg.Branding
		if cfg.Branding.LogoFilename != "" {
			tdata.LogoPath = p.store.LogoPath(cfg.Branding.LogoFilename)
		}
	}

	// Chart failures degrade to no chart; the report still renders.
	if cfg.Chart != nil && data.ChartX != "" && data.ChartY != "" {
		labels, values := aggregateChart(data.AllRows(), data.ChartX, data.ChartY)
		title := fmt.Sprintf("%s por %s", data.ChartY, data.ChartX)
		png, err := RenderChart(cfg.Chart.Type, title, labels, values)
		if err != nil {
			p.log.Warn("chart rendering failed, continuing without chart",
				"design", design.ID, "error", err)
		} else {
			tdata.ChartImage = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
		}
	}

	spec, err := formatFor(design.OutputFormat)
	if err != nil {
		return nil, err
	}
	filename, err := Filename(design.Name, design.OutputFormat)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := p.templates[spec.Template].ExecuteTemplate(&buf, spec.Template, tdata); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %v", spec.Template, err)
	}

	out := &Output{MIMEType: spec.MIMEType, Filename: filename}
	if design.OutputFormat == models.FormatPDF {
		pdfBytes, err := p.pdf.Convert(buf.String())
		if err != nil {
			return nil, fmt.Errorf("pdf conversion: %v", err)
		}
		out.Bytes = pdfBytes
	} else {
		out.Bytes = buf.Bytes()
	}
	return out, nil
}

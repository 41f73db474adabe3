// Package pdf renders proposal documents to PDF with gofpdf.
package pdf

import (
	"bytes"
	"context"

	"github.com/jung-kurt/gofpdf"

	"github.com/hiroba-develop/GrantsDB-Demo/internal/application/proposal"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/config"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/monitoring/logging"
	"github.com/hiroba-develop/GrantsDB-Demo/pkg/errors"
)

const (
	marginMM     = 20.0
	termLabelMM  = 40.0
	titleSize    = 16.0
	headingSize  = 12.0
	bodySize     = 9.5
	lineHeightMM = 5.5
)

// Generator implements proposal.Renderer on top of gofpdf.  The document
// carries Japanese text, so a UTF-8 TTF font should be configured via
// proposal.font_path; without one the built-in core font is used and
// non-Latin glyphs degrade.
type Generator struct {
	cfg config.ProposalConfig
	log logging.Logger
}

// NewGenerator builds a PDF renderer from configuration.
func NewGenerator(cfg config.ProposalConfig, log logging.Logger) *Generator {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Generator{cfg: cfg, log: log}
}

// Render produces a single-page portrait PDF for the document.  Content that
// would overflow the page is clipped rather than spilling onto a second page.
func (g *Generator) Render(ctx context.Context, doc proposal.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", g.cfg.PageSize, "")
	pdf.SetMargins(marginMM, marginMM, marginMM)
	pdf.SetAutoPageBreak(false, marginMM)

	family := g.cfg.FontFamily
	if family == "" {
		family = "Helvetica"
	}
	if g.cfg.FontPath != "" {
		pdf.AddUTF8Font(family, "", g.cfg.FontPath)
		pdf.AddUTF8Font(family, "B", g.cfg.FontPath)
	}

	pdf.AddPage()
	pageWidth, _ := pdf.GetPageSize()
	contentWidth := pageWidth - 2*marginMM

	// Title block.
	pdf.SetFont(family, "B", titleSize)
	pdf.MultiCell(contentWidth, 8, doc.Title, "", "L", false)
	pdf.Ln(2)
	pdf.SetFont(family, "", headingSize)
	pdf.CellFormat(contentWidth, 7, doc.Addressee, "", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.SetDrawColor(120, 120, 120)
	pdf.Line(marginMM, pdf.GetY(), pageWidth-marginMM, pdf.GetY())
	pdf.Ln(5)

	// Narrative.
	pdf.SetFont(family, "B", headingSize)
	pdf.CellFormat(contentWidth, 7, doc.NarrativeHeading, "", 1, "L", false, 0, "")
	pdf.SetFont(family, "", bodySize)
	pdf.MultiCell(contentWidth, lineHeightMM, doc.Narrative, "", "L", false)
	pdf.Ln(4)

	// Terms table.
	pdf.SetFont(family, "B", headingSize)
	pdf.CellFormat(contentWidth, 7, doc.TermsHeading, "", 1, "L", false, 0, "")
	pdf.SetFont(family, "", bodySize)
	pdf.SetFillColor(242, 242, 242)
	pdf.SetDrawColor(180, 180, 180)
	for _, row := range doc.Terms {
		y := pdf.GetY()
		pdf.SetFont(family, "B", bodySize)
		pdf.CellFormat(termLabelMM, 7, row.Label, "1", 0, "L", true, 0, "")
		pdf.SetFont(family, "", bodySize)
		x := marginMM + termLabelMM
		pdf.SetXY(x, y)
		pdf.MultiCell(contentWidth-termLabelMM, 7, row.Value, "1", "L", false)
		if pdf.GetY() < y+7 {
			pdf.SetY(y + 7)
		}
	}
	pdf.Ln(4)

	// Conditions.
	pdf.SetFont(family, "B", headingSize)
	pdf.CellFormat(contentWidth, 7, doc.ConditionsHeading, "", 1, "L", false, 0, "")
	pdf.SetFont(family, "", bodySize)
	for _, cond := range doc.Conditions {
		pdf.MultiCell(contentWidth, lineHeightMM, "・"+cond, "", "L", false)
		pdf.Ln(1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, errors.CodeProposalRenderFailed, "pdf output failed")
	}
	return buf.Bytes(), nil
}

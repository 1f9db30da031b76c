// Package report renders the card expiration report as a PDF and delivers it by email.
package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/allisson/cardwatch/internal/customer/domain"
	apperrors "github.com/allisson/cardwatch/internal/errors"
)

const (
	rowHeight   = 6.0
	headerSize  = 9.0
	bodySize    = 8.0
	titleSize   = 16.0
	sectionSize = 12.0
	dateLayout  = "2006-01-02"
)

type column struct {
	title string
	width float64
	align string
}

var cardColumns = []column{
	{"Customer", 70, "L"},
	{"Business", 60, "L"},
	{"Currency", 20, "C"},
	{"Card", 45, "L"},
	{"Expires", 27, "C"},
	{"Days", 20, "R"},
	{"Warning", 35, "C"},
}

var actionColumns = []column{
	{"Customer", 70, "L"},
	{"Business", 70, "L"},
	{"Currency", 20, "C"},
	{"Customer since", 32, "C"},
	{"Cards", 20, "R"},
	{"Reason", 65, "L"},
}

// PDFRenderer renders expiration reports with fpdf.
type PDFRenderer struct {
	location    *time.Location
	compression bool
}

// NewPDFRenderer creates a renderer that prints dates in the given location.
func NewPDFRenderer(location *time.Location) *PDFRenderer {
	if location == nil {
		location = time.UTC
	}
	return &PDFRenderer{location: location, compression: true}
}

// Render writes the report as an A4 landscape PDF.
func (r *PDFRenderer) Render(report *domain.ExpirationReport, w io.Writer) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetCompression(r.compression)
	pdf.SetTitle("Card expiration report", true)
	pdf.SetCreator("cardwatch", true)
	pdf.SetCreationDate(report.GeneratedAt)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", bodySize)
		pdf.CellFormat(0, rowHeight, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	scope := "All merchant accounts"
	if report.Currency != nil {
		scope = string(*report.Currency) + " merchant account"
	}
	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.CellFormat(0, 10, "Card expiration report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", bodySize+1)
	pdf.CellFormat(0, rowHeight, tr(fmt.Sprintf("%s, generated %s", scope,
		report.GeneratedAt.In(r.location).Format("2006-01-02 15:04 MST"))), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	r.summary(pdf, report.Summary)
	r.actionRequired(pdf, tr, report.ActionRequired)
	r.cardSection(pdf, tr, "Expired cards", report.Expired, domain.StatusExpired)
	r.cardSection(pdf, tr, "Cards expiring within 30 days", report.ExpiringSoon, domain.StatusExpiringSoon)
	r.cardSection(pdf, tr, "Cards expiring within 90 days", report.ExpiringLater, domain.StatusExpiringLater)

	if err := pdf.Output(w); err != nil {
		return apperrors.Wrap(err, "failed to render report pdf")
	}
	return nil
}

func (r *PDFRenderer) summary(pdf *fpdf.Fpdf, stats domain.SummaryStatistics) {
	section(pdf, "Summary")
	rows := [][2]string{
		{"Customers", strconv.Itoa(stats.TotalCustomers)},
		{"Cards on file", strconv.Itoa(stats.TotalCards)},
		{"Expired", fmt.Sprintf("%d customers, %d cards", stats.Expired.Customers, stats.Expired.Cards)},
		{"Expiring soon", fmt.Sprintf("%d customers, %d cards", stats.ExpiringSoon.Customers, stats.ExpiringSoon.Cards)},
		{"Expiring later", fmt.Sprintf("%d customers, %d cards", stats.ExpiringLater.Customers, stats.ExpiringLater.Cards)},
	}
	pdf.SetFont("Helvetica", "", bodySize+1)
	for _, row := range rows {
		pdf.CellFormat(50, rowHeight, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, rowHeight, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (r *PDFRenderer) actionRequired(pdf *fpdf.Fpdf, tr func(string) string, customers []*domain.CustomerWithExpiration) {
	section(pdf, fmt.Sprintf("Action required (%d)", len(customers)))
	if len(customers) == 0 {
		empty(pdf)
		return
	}

	header(pdf, actionColumns)
	for i, c := range customers {
		since := "unknown"
		if c.Customer.CustomerSince != nil {
			since = c.Customer.CustomerSince.In(r.location).Format(dateLayout)
		}
		row(pdf, actionColumns, i%2 == 1,
			tr(c.Customer.FullName()),
			tr(c.Customer.BusinessName),
			string(c.Customer.Currency),
			since,
			strconv.Itoa(c.TotalCards()),
			actionReason(c),
		)
	}
	pdf.Ln(4)
}

func (r *PDFRenderer) cardSection(
	pdf *fpdf.Fpdf,
	tr func(string) string,
	title string,
	customers []*domain.CustomerWithExpiration,
	status domain.ExpirationStatus,
) {
	section(pdf, fmt.Sprintf("%s (%d)", title, len(customers)))
	if len(customers) == 0 {
		empty(pdf)
		return
	}

	header(pdf, cardColumns)
	line := 0
	for _, c := range customers {
		for _, e := range c.Expirations {
			if e.Status != status {
				continue
			}
			expires := ""
			if e.ExpirationDate != nil {
				expires = e.ExpirationDate.Format("01/2006")
			}
			row(pdf, cardColumns, line%2 == 1,
				tr(c.Customer.FullName()),
				tr(c.Customer.BusinessName),
				string(c.Customer.Currency),
				e.Card.MaskedNumber(),
				expires,
				strconv.Itoa(e.DaysUntilExpiration),
				string(e.WarningLevel),
			)
			line++
		}
	}
	pdf.Ln(4)
}

// actionReason mirrors the urgency ranking of the action-required policy.
func actionReason(c *domain.CustomerWithExpiration) string {
	switch {
	case c.HasExpired:
		return "Expired card on file"
	case c.HasExpiringSoon:
		return "Card expiring soon"
	case !c.HasCards():
		return "No card on file"
	default:
		return "New customer"
	}
}

func section(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", sectionSize)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

func empty(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", bodySize+1)
	pdf.CellFormat(0, rowHeight, "None", "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func header(pdf *fpdf.Fpdf, columns []column) {
	pdf.SetFont("Helvetica", "B", headerSize)
	pdf.SetFillColor(220, 226, 234)
	for _, col := range columns {
		pdf.CellFormat(col.width, rowHeight+1, col.title, "1", 0, col.align, true, 0, "")
	}
	pdf.Ln(-1)
}

func row(pdf *fpdf.Fpdf, columns []column, shaded bool, values ...string) {
	pdf.SetFont("Helvetica", "", bodySize)
	pdf.SetFillColor(245, 247, 250)
	for i, col := range columns {
		pdf.CellFormat(col.width, rowHeight, values[i], "1", 0, col.align, shaded, 0, "")
	}
	pdf.Ln(-1)
}

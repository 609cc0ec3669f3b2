package invoice

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"time"

	"invoicing-backend/internal/config"
	"invoicing-backend/internal/models"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

const ContentTypePDF = "application/pdf"

//go:embed assets/logo.png
var defaultLogo []byte

const (
	pageMargin  = 15.0
	labelWidth  = 60.0
	valueWidth  = 120.0
	lineHeight  = 8.0
	logoWidth   = 30.0
	dateLayout  = "2006-01-02"
	moneyDigits = 2

	coreFamily      = "Helvetica"
	utf8Family      = "Body"
	defaultLogoName = "default-logo.png"
)

// Document is a rendered file held in memory.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

type Letterhead struct {
	Company  string
	Address  []string
	LogoPath string
}

// Renderer lays out invoices on A4 pages. It never writes to disk.
//
// Without a configured TTF font text is set in Helvetica, which only covers
// cp1252; anything else needs font_path.
type Renderer struct {
	head     Letterhead
	compress bool
	font     []byte
}

type Option func(*Renderer)

// WithoutCompression leaves page content streams readable, which helps when
// inspecting output.
func WithoutCompression() Option {
	return func(r *Renderer) { r.compress = false }
}

// NewRenderer checks the configured logo and loads the optional UTF-8 font.
// The bundled logo is used when no logo path is set.
func NewRenderer(cfg config.InvoiceConfig, opts ...Option) (*Renderer, error) {
	if cfg.LogoPath != "" {
		if _, err := os.Stat(cfg.LogoPath); err != nil {
			return nil, fmt.Errorf("invoice logo: %w", err)
		}
	}
	r := &Renderer{
		head:     Letterhead{Company: cfg.Company, Address: cfg.Address, LogoPath: cfg.LogoPath},
		compress: true,
	}
	if cfg.FontPath != "" {
		font, err := os.ReadFile(cfg.FontPath)
		if err != nil {
			return nil, fmt.Errorf("invoice font: %w", err)
		}
		r.font = font
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// RenderInvoice renders a purchase invoice. The total printed is the stored
// one.
func (r *Renderer) RenderInvoice(inv models.Invoice, p models.Purchase) (Document, error) {
	doc := r.newPage()
	doc.title("INVOICE")

	doc.section("Invoice Details")
	doc.row("Invoice No", inv.Number)
	doc.row("Invoice ID", strconv.FormatUint(uint64(inv.ID), 10))
	doc.row("Date", inv.CreatedAt.Format(dateLayout))
	doc.row("User ID", strconv.FormatUint(uint64(p.UserID), 10))
	doc.row("Customer", inv.CustomerName)
	doc.row("Email", inv.CustomerEmail)

	doc.section("Payment Details")
	doc.row("Item", p.Item)
	doc.row("Quantity", strconv.Itoa(p.Quantity))
	doc.row("Unit Price", money(p.Price))
	doc.row("Sub Total", money(inv.SubTotal))
	doc.row("Tax ("+TaxRate().Shift(2).String()+"%)", money(inv.Tax))
	doc.total("Total", money(inv.Total))

	return doc.finish(fmt.Sprintf("invoice_%d.pdf", inv.ID))
}

// RenderBilling renders a billing record. Its total is recomputed with
// BillingTotal rather than read from TotalAmount.
func (r *Renderer) RenderBilling(b models.BillingDetails) (Document, error) {
	date := b.CreatedAt
	if b.InitiatedAt != nil {
		date = *b.InitiatedAt
	}

	doc := r.newPage()
	doc.title("INVOICE")

	doc.section("Invoice Details")
	doc.row("Invoice ID", strconv.FormatUint(uint64(b.ID), 10))
	doc.row("Date", date.Format(dateLayout))
	doc.row("User ID", strconv.FormatUint(uint64(b.UserID), 10))

	doc.section("Order Details")
	doc.row("Order Type", b.OrderType)
	doc.row("Subscription Type", b.SubscriptionType)
	doc.row("Status", b.Status)

	doc.section("Payment Details")
	doc.row("Amount", money(b.Amount))
	doc.row("Discount", b.Discount.String()+"%")
	doc.row("Tax", b.Tax.String()+"%")
	doc.row("Currency", b.Currency)
	doc.total("Total", money(BillingTotal(b))+" "+b.Currency)

	return doc.finish(fmt.Sprintf("billing_invoice_%d.pdf", b.ID))
}

type page struct {
	pdf    *fpdf.Fpdf
	family string
	tr     func(string) string
}

func (r *Renderer) newPage() *page {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetCreationDate(time.Now())
	pdf.SetTitle(r.head.Company+" invoice", true)

	p := &page{pdf: pdf, family: coreFamily, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	if r.font != nil {
		pdf.AddUTF8FontFromBytes(utf8Family, "", r.font)
		pdf.AddUTF8FontFromBytes(utf8Family, "B", r.font)
		p.family = utf8Family
		p.tr = func(s string) string { return s }
	}
	pdf.AddPage()

	logo, logoOpts := r.head.LogoPath, fpdf.ImageOptions{ReadDpi: true}
	if logo == "" {
		logo, logoOpts = defaultLogoName, fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(logo, logoOpts, bytes.NewReader(defaultLogo))
	}
	pdf.ImageOptions(logo, pageMargin, pageMargin, logoWidth, 0, false, logoOpts, 0, "")
	pdf.SetX(pageMargin + logoWidth + 5)

	pdf.SetFont(p.family, "B", 16)
	pdf.CellFormat(0, 10, p.tr(r.head.Company), "", 1, "R", false, 0, "")
	pdf.SetFont(p.family, "", 10)
	for _, line := range r.head.Address {
		pdf.CellFormat(0, 5, p.tr(line), "", 1, "R", false, 0, "")
	}
	pdf.Ln(10)
	return p
}

func (p *page) title(text string) {
	p.pdf.SetFont(p.family, "B", 20)
	p.pdf.CellFormat(0, 12, p.tr(text), "", 1, "C", false, 0, "")
	p.pdf.Ln(4)
}

func (p *page) section(text string) {
	p.pdf.Ln(4)
	p.pdf.SetFont(p.family, "B", 12)
	p.pdf.SetFillColor(230, 230, 230)
	p.pdf.CellFormat(labelWidth+valueWidth, lineHeight, p.tr(text), "1", 1, "L", true, 0, "")
}

func (p *page) row(label, value string) {
	p.pdf.SetFont(p.family, "", 11)
	p.pdf.CellFormat(labelWidth, lineHeight, p.tr(label), "1", 0, "L", false, 0, "")
	p.pdf.CellFormat(valueWidth, lineHeight, p.tr(value), "1", 1, "L", false, 0, "")
}

func (p *page) total(label, value string) {
	p.pdf.SetFont(p.family, "B", 11)
	p.pdf.CellFormat(labelWidth, lineHeight, p.tr(label), "1", 0, "L", false, 0, "")
	p.pdf.CellFormat(valueWidth, lineHeight, p.tr(value), "1", 1, "L", false, 0, "")
}

func (p *page) finish(filename string) (Document, error) {
	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return Document{}, fmt.Errorf("render %s: %w", filename, err)
	}
	return Document{Filename: filename, ContentType: ContentTypePDF, Body: buf.Bytes()}, nil
}

func money(d decimal.Decimal) string {
	return d.StringFixed(moneyDigits)
}

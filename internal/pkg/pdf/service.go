// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// GenerateInvoice renders a PDF invoice for an order
func (s *Service) GenerateInvoice(o *order.Order) (*bytes.Buffer, error) {
	data := InvoiceData{
		InvoiceNumber: fmt.Sprintf("INV-%s", strings.ToUpper(o.ID[:8])),
		InvoiceDate:   time.Now().Format("January 2, 2006"),
		Order:         o,
		Company: CompanyInfo{
			Name:    s.config.Company.Name,
			Address: s.config.Company.Address,
			Phone:   s.config.Company.Phone,
			Email:   s.config.Company.Email,
			Website: s.config.Company.Website,
		},
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

func (s *Service) generateHTML(data InvoiceData) (string, error) {
	tmpl := template.Must(template.New("invoice").Funcs(template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
		"lineTotal": func(price float64, qty int) string {
			return fmt.Sprintf("$%.2f", price*float64(qty))
		},
	}).Parse(invoiceTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// InvoiceData represents the data passed to the invoice template
type InvoiceData struct {
	InvoiceNumber string
	InvoiceDate   string
	Order         *order.Order
	Company       CompanyInfo
}

// CompanyInfo represents merchant details shown on the invoice
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
	Website string
}

const invoiceTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Invoice {{.InvoiceNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        .header { display: flex; justify-content: space-between; margin-bottom: 40px; }
        .company h1 { margin: 0 0 8px 0; font-size: 22px; }
        .company p { margin: 2px 0; font-size: 12px; color: #666; }
        .invoice-meta { text-align: right; }
        .invoice-meta h2 { margin: 0 0 8px 0; font-size: 18px; color: #444; }
        .invoice-meta p { margin: 2px 0; font-size: 12px; }
        .shipping { margin-bottom: 30px; font-size: 13px; }
        .shipping h3 { margin: 0 0 6px 0; font-size: 13px; text-transform: uppercase; color: #888; }
        table { width: 100%; border-collapse: collapse; margin-bottom: 30px; }
        th { text-align: left; border-bottom: 2px solid #333; padding: 8px 4px; font-size: 12px; text-transform: uppercase; }
        td { border-bottom: 1px solid #ddd; padding: 8px 4px; font-size: 13px; }
        td.num, th.num { text-align: right; }
        .totals { width: 280px; margin-left: auto; font-size: 13px; }
        .totals div { display: flex; justify-content: space-between; padding: 4px 0; }
        .totals .grand { border-top: 2px solid #333; font-weight: bold; font-size: 15px; padding-top: 8px; }
        .footer { margin-top: 60px; font-size: 11px; color: #999; text-align: center; }
    </style>
</head>
<body>
    <div class="header">
        <div class="company">
            <h1>{{.Company.Name}}</h1>
            {{if .Company.Address}}<p>{{.Company.Address}}</p>{{end}}
            {{if .Company.Phone}}<p>{{.Company.Phone}}</p>{{end}}
            <p>{{.Company.Email}}</p>
            {{if .Company.Website}}<p>{{.Company.Website}}</p>{{end}}
        </div>
        <div class="invoice-meta">
            <h2>Invoice {{.InvoiceNumber}}</h2>
            <p>Date: {{.InvoiceDate}}</p>
            <p>Order: {{.Order.ID}}</p>
            <p>Payment: {{.Order.PaymentMethod}} ({{.Order.PaymentStatus}})</p>
        </div>
    </div>

    {{if .Order.ShippingAddress}}
    <div class="shipping">
        <h3>Ship to</h3>
        <p>{{.Order.ShippingAddress}}</p>
    </div>
    {{end}}

    <table>
        <thead>
            <tr>
                <th>Item</th>
                <th class="num">Price</th>
                <th class="num">Qty</th>
                <th class="num">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Order.Items}}
            <tr>
                <td>{{.Name}}</td>
                <td class="num">{{money .Price}}</td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">{{lineTotal .Price .Quantity}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">
        <div><span>Subtotal</span><span>{{money .Order.Subtotal}}</span></div>
        <div><span>Shipping</span><span>{{money .Order.ShippingCost}}</span></div>
        <div><span>Tax</span><span>{{money .Order.TaxAmount}}</span></div>
        <div class="grand"><span>Total</span><span>{{money .Order.Total}}</span></div>
    </div>

    <div class="footer">
        <p>Thank you for shopping with {{.Company.Name}}.</p>
    </div>
</body>
</html>
`

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sangkips/restaurant-pos/internal/domain/entity"
	"github.com/sangkips/restaurant-pos/internal/domain/enum"
	"github.com/sangkips/restaurant-pos/internal/domain/repository"
	"github.com/sangkips/restaurant-pos/pkg/apperror"
	"github.com/sangkips/restaurant-pos/pkg/printer"
	"github.com/shopspring/decimal"
)

const receiptDateLayout = "02/01/2006 15:04"

// PrinterService renders sale tickets and sends them to the thermal printer.
type PrinterService struct {
	printer  printer.Printer
	saleRepo repository.SaleRepository
	header   entity.ReceiptHeader
	width    int
	location *time.Location
}

// NewPrinterService creates a new printer service. Tickets are dated in loc;
// a nil loc prints UTC.
func NewPrinterService(
	p printer.Printer,
	saleRepo repository.SaleRepository,
	header entity.ReceiptHeader,
	paperWidth int,
	loc *time.Location,
) *PrinterService {
	if loc == nil {
		loc = time.UTC
	}
	return &PrinterService{
		printer:  p,
		saleRepo: saleRepo,
		header:   header,
		width:    paperWidth,
		location: loc,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printer.Type() != printer.TypeNone,
		Connected:  s.printer.IsConnected(ctx),
		Type:       s.printer.Type(),
	}
}

// TestPrint sends a sample ticket to the printer. The receipt is returned
// even when printing fails.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header:  s.header,
		Title:   "PRUEBA DE IMPRESION",
		Number:  "TEST-00000000",
		Date:    time.Now().In(s.location).Format(receiptDateLayout),
		Cashier: "Sistema",
		Items: []entity.ReceiptItem{
			{Name: "Item de prueba", Quantity: 1, UnitPrice: decimal.NewFromInt(10), Total: decimal.NewFromInt(10)},
			{Name: "Otro item", Quantity: 2, UnitPrice: decimal.NewFromInt(4), Total: decimal.NewFromInt(8)},
		},
		Total: decimal.NewFromInt(18),
	}
	receipt.Subtotal, receipt.Tax = SplitTax(receipt.Total)

	if err := s.printer.Print(ctx, FormatReceipt(receipt, s.width)); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}

// PrintSaleReceipt loads a sale and prints its ticket. When the printer
// fails the composed receipt is still returned together with the error.
func (s *PrinterService) PrintSaleReceipt(ctx context.Context, saleID uuid.UUID) (*entity.Receipt, error) {
	sale, err := s.saleRepo.GetWithDetails(ctx, saleID)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrInternalServer, err)
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	receipt := s.BuildReceipt(sale)
	if err := s.printer.Print(ctx, FormatReceipt(receipt, s.width)); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("sale_id", saleID.String()).
			Str("printer", s.printer.Type()).
			Msg("Receipt print failed")
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}
	return receipt, nil
}

// BuildReceipt composes the printable form of a sale.
func (s *PrinterService) BuildReceipt(sale *entity.Sale) *entity.Receipt {
	receipt := &entity.Receipt{
		Header:   s.header,
		Title:    receiptTitle(sale.ReceiptType),
		Number:   sale.ReceiptNumber(),
		Date:     sale.IssuedAt.In(s.location).Format(receiptDateLayout),
		Subtotal: sale.Subtotal,
		Tax:      sale.Tax,
		Total:    sale.Total,
	}

	if c := sale.Customer; c != nil {
		receipt.Customer = c.Name
		receipt.CustomerDoc = c.DocType.String() + " " + c.DocNumber
	}

	if o := sale.Order; o != nil {
		if o.User != nil {
			receipt.Cashier = o.User.Name
		}
		if o.Table != nil {
			receipt.Table = o.Table.Name
		}
		for _, item := range o.Items {
			receipt.Items = append(receipt.Items, entity.ReceiptItem{
				Name:      item.ProductName(),
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				Total:     item.LineTotal(),
			})
		}
		for _, p := range o.Payments {
			rp := entity.ReceiptPayment{Method: paymentLabel(p.Method), Amount: p.Amount}
			if p.Reference != nil {
				rp.Reference = *p.Reference
			}
			receipt.Payments = append(receipt.Payments, rp)
		}
	}

	return receipt
}

func receiptTitle(t enum.ReceiptType) string {
	if t == enum.ReceiptTypeFactura {
		return "FACTURA ELECTRONICA"
	}
	return "BOLETA DE VENTA ELECTRONICA"
}

var paymentLabels = map[enum.PaymentMethod]string{
	enum.PaymentMethodCash:         "Efectivo",
	enum.PaymentMethodCard:         "Tarjeta",
	enum.PaymentMethodYape:         "Yape",
	enum.PaymentMethodPlin:         "Plin",
	enum.PaymentMethodBankTransfer: "Transferencia",
	enum.PaymentMethodOther:        "Otro",
}

func paymentLabel(m enum.PaymentMethod) string {
	if label, ok := paymentLabels[m]; ok {
		return label
	}
	return m.String()
}

func money(d decimal.Decimal) string {
	return "S/ " + d.StringFixed(2)
}

// FormatReceipt converts a Receipt into ESC/POS bytes for paper of width characters.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.TaxID != "" {
		doc.TextF("RUC %s", r.Header.TaxID)
	}
	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.TextF("Tel: %s", r.Header.Phone)
	}

	doc.LineFeed().
		SetBold(true).
		Text(r.Title).
		Text(r.Number).
		SetBold(false).
		SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Fecha:", r.Date)
	if r.Table != "" {
		doc.KeyValue("Mesa:", r.Table)
	}
	if r.Cashier != "" {
		doc.KeyValue("Atendido por:", r.Cashier)
	}
	if r.Customer != "" {
		doc.Text("Cliente: " + r.Customer)
	}
	if r.CustomerDoc != "" {
		doc.Text(r.CustomerDoc)
	}

	doc.Separator('-')

	// Items
	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, item.Total.StringFixed(2))
		if item.Quantity > 1 {
			doc.TextF("  @ %s c/u", item.UnitPrice.StringFixed(2))
		}
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Op. gravada:", money(r.Subtotal)).
		KeyValue("IGV 18%:", money(r.Tax)).
		SetBold(true).
		KeyValue("TOTAL:", money(r.Total)).
		SetBold(false)

	if len(r.Payments) > 0 {
		doc.Separator('-')
		for _, p := range r.Payments {
			doc.KeyValue(p.Method+":", money(p.Amount))
			if p.Reference != "" {
				doc.Text("  Ref: " + p.Reference)
			}
		}
	}

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Gracias por su preferencia").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

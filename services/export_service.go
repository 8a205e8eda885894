package services

import (
	"bytes"
	"fmt"
	"strconv"

	"bukarum/models"
	"bukarum/utils"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

const (
	PDFFilename = "reserva_bukarum.pdf"
	qrSizePx    = 256
)

// ExportService renders printable transcripts of reservations.
type ExportService struct{}

func NewExportService() *ExportService { return &ExportService{} }

// RenderReservationPDF lays out one reservation on an A4 page with a QR code
// of its locator.
func (s *ExportService) RenderReservationPDF(res *models.Reservation) ([]byte, error) {
	if res == nil {
		return nil, fmt.Errorf("nil reservation")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Buk-A-Rum "+res.Locator, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BUK-A-RUM")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	nights := res.Nights()
	lines := []string{
		fmt.Sprintf("Locator        : %s", res.Locator),
		fmt.Sprintf("Room           : %s", safe(res.Room.Label(), "-")),
		fmt.Sprintf("Room type      : %s", safe(res.Room.RoomType.Name, "-")),
		fmt.Sprintf("Check-in       : %s", utils.FormatDate(res.CheckInDate())),
		fmt.Sprintf("Check-out      : %s", utils.FormatDate(res.CheckOutDate())),
		fmt.Sprintf("Length of stay : %s", utils.NightsLabel(nights)),
		fmt.Sprintf("Nightly price  : %s", utils.FormatMoney(res.NightlyPrice)),
		fmt.Sprintf("Total          : %s", utils.FormatMoney(res.TotalPrice())),
		fmt.Sprintf("Booked on      : %s", utils.FormatDate(res.BookedOnDate())),
		fmt.Sprintf("Card           : %s %s (exp %02d/%d)",
			safe(res.CardProfile.Name, "-"), MaskCardNumber(res.CardNumber), res.ExpiryMonth, res.ExpiryYear),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, tr(line))
		pdf.Ln(7)
	}

	if res.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Notes")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(res.Notes), "", "", false)
	}

	png, err := qrcode.Encode(res.Locator, qrcode.Medium, qrSizePx)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	imgName := "locator-" + res.Locator
	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(png))
	pdf.ImageOptions(imgName, 150, 20, 40, 40, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MaskCardNumber keeps the last four digits.
func MaskCardNumber(n int64) string {
	digits := strconv.FormatInt(n, 10)
	if len(digits) <= 4 {
		return digits
	}
	return "**** " + digits[len(digits)-4:]
}

func safe(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

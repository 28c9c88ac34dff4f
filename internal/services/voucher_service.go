package services

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"github.com/silvertrail/tours-backend/internal/models"
)

// VoucherService renders a printable booking confirmation voucher
type VoucherService struct{}

// NewVoucherService creates a new voucher service
func NewVoucherService() *VoucherService {
	return &VoucherService{}
}

// BuildVoucherPDF renders the confirmation voucher for a booking. Returns the
// PDF bytes and a suggested filename.
func (s *VoucherService) BuildVoucherPDF(booking models.Booking, tour models.Tour, user models.User) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Voucher", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING VOUCHER")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking #%d (%s)", booking.ID, booking.Status),
		fmt.Sprintf("Tour: %s", tour.Title),
		fmt.Sprintf("Destination: %s, %s", tour.City, tour.Country),
		fmt.Sprintf("Travel date: %s", booking.TravelDate),
		fmt.Sprintf("Duration: %d day(s)", tour.DurationDays),
		fmt.Sprintf("Booked by: %s %s <%s>", user.FirstName, user.LastName, user.Email),
		fmt.Sprintf("Total price: %.2f", booking.TotalPrice),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Passengers (%d)", len(booking.Passengers)))
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 11)
	for i, p := range booking.Passengers {
		pdf.Cell(0, 6, fmt.Sprintf("%d. %s  passport %s (%s)", i+1, p.FullName, p.PassportNumber, p.PassportIssuedBy))
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please bring this voucher and the listed passports on the day of travel.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render voucher: %w", err)
	}

	filename := fmt.Sprintf("voucher_%d.pdf", booking.ID)
	return buf.Bytes(), filename, nil
}

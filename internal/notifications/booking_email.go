package notifications

import (
	"bytes"
	"fmt"
	"html/template"

	"wildtrack-backend/internal/bookings"
	"wildtrack-backend/internal/schedule"
)

const bookingConfirmationTemplate = `<!DOCTYPE html>
<html>
<body>
  <p>Hi {{.Name}},</p>
  <p>Thank you for your booking enquiry with UmZulu Wildtrack. Our team will confirm availability shortly.</p>
  <ul>
    <li>Safari: {{.Package}}</li>
    <li>Date: {{.Date}}</li>
    <li>Guests: {{.Guests}}</li>
    <li>Estimated total: {{.Total}}</li>
    <li>Reference: {{.ID}}</li>
  </ul>
  <p>See you in the bush!</p>
</body>
</html>`

const bookingNoticeTemplate = `<!DOCTYPE html>
<html>
<body>
  <h3>New booking enquiry</h3>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  <p><strong>Phone:</strong> {{.Phone}}</p>
  <p><strong>Safari:</strong> {{.Package}}</p>
  <p><strong>Date:</strong> {{.Date}}</p>
  <p><strong>Guests:</strong> {{.Guests}}</p>
  <p><strong>Estimated total:</strong> {{.Total}}</p>
  <p><strong>ID:</strong> {{.ID}}</p>
  {{if .Message}}<p><strong>Message:</strong><br/>{{.Message}}</p>{{end}}
</body>
</html>`

var (
	bookingConfirmationTmpl = template.Must(template.New("booking_confirmation").Parse(bookingConfirmationTemplate))
	bookingNoticeTmpl       = template.Must(template.New("booking_notice").Parse(bookingNoticeTemplate))
)

type bookingEmailData struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	Package string
	Date    string
	Guests  int
	Total   string
	Message string
}

func newBookingEmailData(b bookings.Booking) bookingEmailData {
	total := "on request"
	if b.TotalAmount > 0 {
		total = formatRand(b.TotalAmount)
	}
	return bookingEmailData{
		ID:      b.ID,
		Name:    b.Name,
		Email:   b.Email,
		Phone:   b.Phone,
		Package: b.SafariPackage,
		Date:    b.Date.Format(schedule.DateLayout),
		Guests:  b.Guests,
		Total:   total,
		Message: b.Message,
	}
}

func buildBookingConfirmationHTML(b bookings.Booking) (string, error) {
	var buf bytes.Buffer
	if err := bookingConfirmationTmpl.Execute(&buf, newBookingEmailData(b)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildBookingNoticeHTML(b bookings.Booking) (string, error) {
	var buf bytes.Buffer
	if err := bookingNoticeTmpl.Execute(&buf, newBookingEmailData(b)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatRand(amount float64) string {
	return fmt.Sprintf("R %.2f", amount)
}

package notify

import (
	"fmt"
	"strings"
	"text/template"

	"meetsched/internal/model"
)

var confirmationTmpl = template.Must(template.New("confirmation").Parse(
	`Hi {{.Booking.Name}},

Your meeting with {{.HostName}} is confirmed.

  Date:     {{.Booking.Date}}
  Time:     {{.Booking.Time}} ({{.Booking.Timezone}})
  Duration: {{.Booking.Duration}} minutes
  Purpose:  {{.Booking.Purpose}}

Join the meeting:
  {{.Booking.JoinURL}}
  Meeting ID: {{.Booking.ZoomMeetingID}}
  Password:   {{.Booking.Password}}

Booking reference: {{.Booking.ID}}

See you there!
`))

var hostAlertTmpl = template.Must(template.New("host_alert").Parse(
	`New meeting booked.

  Attendee: {{.Booking.Name}} <{{.Booking.Email}}>{{if .Booking.Phone}}
  Phone:    {{.Booking.Phone}}{{end}}
  Date:     {{.Booking.Date}}
  Time:     {{.Booking.Time}} ({{.Booking.Timezone}})
  Duration: {{.Booking.Duration}} minutes
  Purpose:  {{.Booking.Purpose}}
  Booking:  {{.Booking.ID}}
`))

type messageData struct {
	Booking  model.Booking
	HostName string
}

// ConfirmationSubject is the subject line of the attendee email.
func ConfirmationSubject(b model.Booking) string {
	return fmt.Sprintf("Meeting confirmed - %s at %s", b.Date, b.Time)
}

// RenderConfirmation builds the attendee confirmation body.
func RenderConfirmation(b model.Booking, hostName string) (string, error) {
	return render(confirmationTmpl, messageData{Booking: b, HostName: hostName})
}

// HostAlertSubject is the subject line of the host alert.
func HostAlertSubject(b model.Booking) string {
	return fmt.Sprintf("New booking: %s on %s at %s", b.Name, b.Date, b.Time)
}

// RenderHostAlert builds the host alert body.
func RenderHostAlert(b model.Booking) (string, error) {
	return render(hostAlertTmpl, messageData{Booking: b})
}

func render(t *template.Template, data messageData) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return sb.String(), nil
}

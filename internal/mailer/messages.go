package mailer

import (
	"fmt"
	"html/template"
	"strings"
)

// BookingEmail carries the display-ready fields for booking notifications.
// Date and Time are already formatted for the guest (long date and 12-hour
// clock); the mailer does no scheduling math of its own.
type BookingEmail struct {
	GuestName string
	Email     string
	Phone     string
	VenueName string
	Date      string
	Time      string
	PartySize int
	Status    string // "confirmada" or "cancelada"
}

// CredentialsEmail carries generated sign-in data for a new staff account.
type CredentialsEmail struct {
	Name     string
	Username string
	Password string
}

var bookingGuestTmpl = template.Must(template.New("bookingGuest").Parse(`<html><body style="font-family:Arial,sans-serif;color:#333">
<h2>Limoncello</h2>
<p>Hola {{.GuestName}},</p>
<p>Tu reserva en <strong>{{.VenueName}}</strong> ha sido <strong>{{.Status}}</strong>.</p>
<table cellpadding="4">
<tr><td>Fecha:</td><td>{{.Date}}</td></tr>
<tr><td>Hora:</td><td>{{.Time}}</td></tr>
<tr><td>Personas:</td><td>{{.PartySize}}</td></tr>
</table>
<p>Gracias por elegirnos.</p>
</body></html>`))

var bookingVenueTmpl = template.Must(template.New("bookingVenue").Parse(`<html><body style="font-family:Arial,sans-serif;color:#333">
<h2>Limoncello · {{.VenueName}}</h2>
<p>Reserva <strong>{{.Status}}</strong>:</p>
<table cellpadding="4">
<tr><td>Cliente:</td><td>{{.GuestName}}</td></tr>
<tr><td>Correo:</td><td>{{.Email}}</td></tr>
<tr><td>Teléfono:</td><td>{{.Phone}}</td></tr>
<tr><td>Fecha:</td><td>{{.Date}}</td></tr>
<tr><td>Hora:</td><td>{{.Time}}</td></tr>
<tr><td>Personas:</td><td>{{.PartySize}}</td></tr>
</table>
</body></html>`))

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<html><body style="font-family:Arial,sans-serif;color:#333">
<h2>Limoncello</h2>
<p>Hola {{.Name}},</p>
<p>Tu cuenta ha sido creada. Estas son tus credenciales de acceso:</p>
<table cellpadding="4">
<tr><td>Usuario:</td><td><strong>{{.Username}}</strong></td></tr>
<tr><td>Contraseña:</td><td><strong>{{.Password}}</strong></td></tr>
</table>
<p>Te recomendamos cambiar la contraseña después del primer ingreso.</p>
</body></html>`))

var resetTmpl = template.Must(template.New("reset").Parse(`<html><body style="font-family:Arial,sans-serif;color:#333">
<h2>Limoncello</h2>
<p>Hola {{.Name}},</p>
<p>Se ha generado una nueva contraseña para tu cuenta <strong>{{.Username}}</strong>:</p>
<p style="font-size:1.2em"><strong>{{.Password}}</strong></p>
<p>Si no solicitaste este cambio, contacta al administrador.</p>
</body></html>`))

// RenderBookingGuest returns the subject and body for the message a guest
// receives when their booking is created or cancelled.
func RenderBookingGuest(data BookingEmail) (string, string, error) {
	subject := fmt.Sprintf("Reserva %s · %s", data.Status, data.VenueName)
	body, err := render(bookingGuestTmpl, data)
	return subject, body, err
}

// RenderBookingVenue returns the subject and body for the copy the venue's
// notification address receives.
func RenderBookingVenue(data BookingEmail) (string, string, error) {
	subject := fmt.Sprintf("Reserva %s · %s · %s", data.Status, data.Date, data.Time)
	body, err := render(bookingVenueTmpl, data)
	return subject, body, err
}

// RenderWelcome returns the subject and body for a new-account email.
func RenderWelcome(data CredentialsEmail) (string, string, error) {
	body, err := render(welcomeTmpl, data)
	return "Bienvenido a Limoncello", body, err
}

// RenderPasswordReset returns the subject and body for a recovery email.
func RenderPasswordReset(data CredentialsEmail) (string, string, error) {
	body, err := render(resetTmpl, data)
	return "Recuperación de contraseña · Limoncello", body, err
}

func render(t *template.Template, data any) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("mailer: render %s: %w", t.Name(), err)
	}
	return b.String(), nil
}

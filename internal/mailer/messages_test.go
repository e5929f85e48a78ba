package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBookingGuest(t *testing.T) {
	subject, body, err := RenderBookingGuest(BookingEmail{
		GuestName: "ANA RUIZ",
		VenueName: "Limoncello Centro",
		Date:      "2026-03-02",
		Time:      "07:00 PM",
		PartySize: 4,
		Status:    "confirmada",
	})
	require.NoError(t, err)
	assert.Contains(t, subject, "confirmada")
	assert.Contains(t, subject, "Limoncello Centro")
	assert.Contains(t, body, "ANA RUIZ")
	assert.Contains(t, body, "2026-03-02")
	assert.Contains(t, body, "07:00 PM")
	assert.Contains(t, body, "4")
}

func TestRenderBookingVenueIncludesContact(t *testing.T) {
	_, body, err := RenderBookingVenue(BookingEmail{
		GuestName: "ANA RUIZ",
		Email:     "ANA@EXAMPLE.COM",
		Phone:     "3001234567",
		VenueName: "Limoncello Norte",
		Date:      "2026-03-02",
		Time:      "12:15 PM",
		PartySize: 2,
		Status:    "cancelada",
	})
	require.NoError(t, err)
	assert.Contains(t, body, "ANA@EXAMPLE.COM")
	assert.Contains(t, body, "3001234567")
	assert.Contains(t, body, "cancelada")
}

func TestRenderCredentialEmails(t *testing.T) {
	data := CredentialsEmail{Name: "CARLOS GOMEZ", Username: "cgomez", Password: "xK3mP9qR2w"}

	subject, body, err := RenderWelcome(data)
	require.NoError(t, err)
	assert.Contains(t, subject, "Bienvenido")
	assert.Contains(t, body, "cgomez")
	assert.Contains(t, body, "xK3mP9qR2w")

	subject, body, err = RenderPasswordReset(data)
	require.NoError(t, err)
	assert.Contains(t, subject, "Recuperación")
	assert.Contains(t, body, "cgomez")
	assert.Contains(t, body, "xK3mP9qR2w")
}

func TestRenderEscapesHTML(t *testing.T) {
	_, body, err := RenderBookingGuest(BookingEmail{
		GuestName: `<script>alert("x")</script>`,
		Status:    "confirmada",
	})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestBuildMessageHeaders(t *testing.T) {
	msg := buildMessage("reservas@limoncello.local", []string{"a@b.co", "c@d.co"}, "Hola", "<p>hi</p>")
	assert.Contains(t, msg, "From: reservas@limoncello.local\r\n")
	assert.Contains(t, msg, "To: a@b.co, c@d.co\r\n")
	assert.Contains(t, msg, "Subject: Hola\r\n")
	assert.Contains(t, msg, "Content-Type: text/html; charset=utf-8\r\n")
	assert.Contains(t, msg, "<p>hi</p>")
}

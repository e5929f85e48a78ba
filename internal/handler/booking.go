package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/limoncello/reservation-api/internal/availability"
	"github.com/limoncello/reservation-api/internal/config"
	"github.com/limoncello/reservation-api/internal/mailer"
	"github.com/limoncello/reservation-api/internal/model"
	"github.com/limoncello/reservation-api/internal/queue"
	"github.com/limoncello/reservation-api/internal/repository"
	"github.com/limoncello/reservation-api/internal/schedule"
	queue_publisher "github.com/limoncello/reservation-api/internal/service"
)

// BookingStore is the persistence surface the booking lifecycle needs.
// *repository.BookingRepo satisfies it.
type BookingStore interface {
	HasActiveFor(ctx context.Context, personID, venueID uint64, date time.Time) (bool, error)
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id uint64) (model.Booking, error)
	ListUpcomingByVenue(ctx context.Context, venueID uint64, from time.Time) ([]model.Booking, error)
	ListActiveByPerson(ctx context.Context, personID uint64) ([]model.Booking, error)
	Approve(ctx context.Context, id uint64) error
	Cancel(ctx context.Context, id uint64) error
}

// PersonStore covers the guest lookups and the upsert done on booking
// creation. *repository.PersonRepo satisfies it.
type PersonStore interface {
	GetByID(ctx context.Context, id uint64) (model.Person, error)
	GetByEmail(ctx context.Context, email string) (model.Person, error)
	Create(ctx context.Context, p *model.Person) error
	Update(ctx context.Context, p model.Person) error
}

// VenueStore resolves venues for booking requests. *repository.VenueRepo
// satisfies it.
type VenueStore interface {
	GetByID(ctx context.Context, id uint64) (model.Venue, error)
}

// BookingHandler bundles everything the booking lifecycle needs: the
// availability engine and its slot locks for admission control, the
// stores for persistence, and the mailer for notifications.
type BookingHandler struct {
	Cfg      config.Config
	Engine   *availability.Engine
	Locks    *availability.SlotLocks
	Bookings BookingStore
	People   PersonStore
	Venues   VenueStore
	Mail     mailer.Sender

	// Publish sends a booking event to the broker. Nil disables events.
	Publish func(ctx context.Context, ev queue.BookingEvent) error
}

// NewBookingHandler constructs a BookingHandler and panics on nil
// dependencies. The mailer may be nil only in tests.
func NewBookingHandler(cfg config.Config, engine *availability.Engine, locks *availability.SlotLocks,
	bookings BookingStore, people PersonStore, venues VenueStore,
	mail mailer.Sender) *BookingHandler {
	if engine == nil || locks == nil || bookings == nil || people == nil || venues == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{
		Cfg: cfg, Engine: engine, Locks: locks,
		Bookings: bookings, People: people, Venues: venues, Mail: mail,
		Publish: queue_publisher.PublishBookingEvent,
	}
}

// ----- DTOs -----

type createBookingReq struct {
	VenueID        uint64 `json:"venue_id"`
	Identification string `json:"identification"`
	FirstName      string `json:"first_name"`
	SecondName     string `json:"second_name"`
	FirstLastName  string `json:"first_last_name"`
	SecondLastName string `json:"second_last_name"`
	DateOfBirth    string `json:"date_of_birth"` // YYYY-MM-DD
	PhoneNumber    string `json:"phone_number"`
	Email          string `json:"email"`
	SendEmail      *bool  `json:"send_email"` // defaults to true
	Date           string `json:"date"`       // YYYY-MM-DD
	Time           string `json:"time"`       // HH:MM, 24-hour
	PartySize      int    `json:"party_size"`
	Observations   string `json:"observations"`
}

type bookingResp struct {
	ID           uint64 `json:"id"`
	VenueID      uint64 `json:"venue_id"`
	PersonID     uint64 `json:"person_id"`
	PartySize    int    `json:"party_size"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	TimeDisplay  string `json:"time_display"`
	Observations string `json:"observations,omitempty"`
	Active       bool   `json:"active"`
	Approved     bool   `json:"approved"`
	CreatedAt    string `json:"created_at"`
}

func toBookingResp(b model.Booking) bookingResp {
	return bookingResp{
		ID:           b.ID,
		VenueID:      b.VenueID,
		PersonID:     b.PersonID,
		PartySize:    b.PartySize,
		Date:         b.BookingDate.Format(availability.DateLayout),
		Time:         b.BookingTime.String(),
		TimeDisplay:  b.BookingTime.Clock12(),
		Observations: b.Observations,
		Active:       b.Active,
		Approved:     b.Approved,
		CreatedAt:    b.CreatedAt.Format(time.RFC3339),
	}
}

// Create handles the public booking form. The person is upserted by email,
// the requested slot is re-validated under the venue+date slot lock, and on
// success the guest and the venue are notified. Notification and event
// failures are logged but never fail the booking.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.VenueID == 0 || req.Identification == "" || req.FirstName == "" ||
		req.FirstLastName == "" || req.Email == "" || req.Date == "" || req.Time == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing required fields"})
	}
	if req.PartySize <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "party_size must be a positive integer"})
	}
	slot, err := schedule.ParseTimeOfDay(req.Time)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "time must be HH:MM"})
	}
	date, err := availability.ParseDate(req.Date, h.Cfg.Timezone)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	venue, err := h.Venues.GetByID(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	person, err := h.upsertPerson(ctx, req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save person failed"})
	}

	booking := model.Booking{
		PersonID:     person.ID,
		VenueID:      venue.ID,
		PartySize:    req.PartySize,
		BookingDate:  date,
		BookingTime:  slot,
		Observations: req.Observations,
	}

	// Admission and insert run under the slot lock so two concurrent
	// requests cannot both pass the capacity check.
	err = h.Locks.Do(venue.ID, date, func() error {
		dup, err := h.Bookings.HasActiveFor(ctx, person.ID, venue.ID, date)
		if err != nil {
			return err
		}
		if dup {
			return repository.ErrDuplicateBooking
		}
		open, err := h.Engine.AvailableSlots(ctx, venue.ID, req.Date, req.PartySize)
		if err != nil {
			return err
		}
		if !containsSlot(open, slot) {
			return errSlotUnavailable
		}
		return h.Bookings.Create(ctx, &booking)
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateBooking):
			return c.JSON(http.StatusConflict, echo.Map{"error": "an active booking already exists for this date"})
		case errors.Is(err, errSlotUnavailable):
			return c.JSON(http.StatusConflict, echo.Map{"error": "requested time is no longer available"})
		case errors.Is(err, availability.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
		}
	}

	h.notify(c, person, venue, booking, "confirmada")
	h.publish(c, queue.ActionCreated, person, venue, booking)

	return c.JSON(http.StatusCreated, toBookingResp(booking))
}

var errSlotUnavailable = errors.New("slot unavailable")

func containsSlot(slots []schedule.TimeOfDay, want schedule.TimeOfDay) bool {
	for _, s := range slots {
		if s == want {
			return true
		}
	}
	return false
}

// upsertPerson finds the guest by email or creates a new person record.
// Contact fields on an existing record are refreshed from the request.
func (h *BookingHandler) upsertPerson(ctx context.Context, req createBookingReq) (model.Person, error) {
	person, err := h.People.GetByEmail(ctx, req.Email)
	if err == nil {
		if req.PhoneNumber != "" {
			person.PhoneNumber = &req.PhoneNumber
		}
		if req.SendEmail != nil {
			person.SendEmail = *req.SendEmail
		}
		if err := h.People.Update(ctx, person); err != nil {
			return model.Person{}, err
		}
		return person, nil
	}
	if !errors.Is(err, repository.ErrPersonNotFound) {
		return model.Person{}, err
	}

	dob := time.Time{}
	if req.DateOfBirth != "" {
		if d, err := availability.ParseDate(req.DateOfBirth, h.Cfg.Timezone); err == nil {
			dob = d
		}
	}
	person = model.Person{
		Identification: req.Identification,
		FirstName:      req.FirstName,
		FirstLastName:  req.FirstLastName,
		DateOfBirth:    dob,
		Email:          req.Email,
		SendEmail:      true,
	}
	if req.SecondName != "" {
		person.SecondName = &req.SecondName
	}
	if req.SecondLastName != "" {
		person.SecondLastName = &req.SecondLastName
	}
	if req.PhoneNumber != "" {
		person.PhoneNumber = &req.PhoneNumber
	}
	if req.SendEmail != nil {
		person.SendEmail = *req.SendEmail
	}
	if err := h.People.Create(ctx, &person); err != nil {
		return model.Person{}, err
	}
	return person, nil
}

// notify sends the guest and venue emails for a booking status change.
func (h *BookingHandler) notify(c echo.Context, person model.Person, venue model.Venue, b model.Booking, status string) {
	if h.Mail == nil {
		return
	}
	data := mailer.BookingEmail{
		GuestName: person.FullName(),
		Email:     person.Email,
		VenueName: venue.Name,
		Date:      b.BookingDate.Format(availability.DateLayout),
		Time:      b.BookingTime.Clock12(),
		PartySize: b.PartySize,
		Status:    status,
	}
	if person.PhoneNumber != nil {
		data.Phone = *person.PhoneNumber
	}

	if person.SendEmail {
		if subject, body, err := mailer.RenderBookingGuest(data); err == nil {
			if err := h.Mail.Send([]string{person.Email}, subject, body); err != nil {
				c.Logger().Warnf("booking: guest email failed: %v", err)
			}
		}
	}
	recipients := []string{venue.Email}
	if h.Cfg.VenueNotifyCC != "" {
		recipients = append(recipients, h.Cfg.VenueNotifyCC)
	}
	if subject, body, err := mailer.RenderBookingVenue(data); err == nil {
		if err := h.Mail.Send(recipients, subject, body); err != nil {
			c.Logger().Warnf("booking: venue email failed: %v", err)
		}
	}
}

// publish emits a booking event to the broker; failures are logged only.
func (h *BookingHandler) publish(c echo.Context, action string, person model.Person, venue model.Venue, b model.Booking) {
	if h.Publish == nil {
		return
	}
	ev := queue.BookingEvent{
		Action:     action,
		BookingID:  b.ID,
		VenueID:    venue.ID,
		VenueName:  venue.Name,
		GuestName:  person.FullName(),
		GuestEmail: person.Email,
		Date:       b.BookingDate.Format(availability.DateLayout),
		Time:       b.BookingTime.String(),
		PartySize:  b.PartySize,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Publish(c.Request().Context(), ev); err != nil {
		c.Logger().Warnf("booking: publish %s event failed: %v", action, err)
	}
}

// Get returns one booking (staff only).
func (h *BookingHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}

// ListByVenue returns upcoming bookings for a venue from today onward.
func (h *BookingHandler) ListByVenue(c echo.Context) error {
	venueID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Venues.GetByID(ctx, venueID); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	now := h.Engine.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	bookings, err := h.Bookings.ListUpcomingByVenue(ctx, venueID, today)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]bookingResp, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"venue_id": venueID, "bookings": out})
}

// ListByPerson returns a person's active bookings, newest first.
func (h *BookingHandler) ListByPerson(c echo.Context) error {
	personID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid person id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.ListActiveByPerson(ctx, personID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]bookingResp, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"person_id": personID, "bookings": out})
}

// Approve marks a booking approved, which also removes it from occupancy.
func (h *BookingHandler) Approve(c echo.Context) error {
	return h.transition(c, true)
}

// Cancel deactivates a booking and notifies the guest.
func (h *BookingHandler) Cancel(c echo.Context) error {
	return h.transition(c, false)
}

func (h *BookingHandler) transition(c echo.Context, approve bool) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !b.Active {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking is not active"})
	}

	if approve {
		err = h.Bookings.Approve(ctx, id)
	} else {
		err = h.Bookings.Cancel(ctx, id)
	}
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update booking failed"})
	}
	b.Active = false
	b.Approved = approve

	person, perr := h.People.GetByID(ctx, b.PersonID)
	venue, verr := h.Venues.GetByID(ctx, b.VenueID)
	if perr == nil && verr == nil {
		if approve {
			h.publish(c, queue.ActionApproved, person, venue, b)
		} else {
			h.notify(c, person, venue, b, "cancelada")
			h.publish(c, queue.ActionCancelled, person, venue, b)
		}
	}

	return c.JSON(http.StatusOK, toBookingResp(b))
}

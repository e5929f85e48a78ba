package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limoncello/reservation-api/internal/availability"
	"github.com/limoncello/reservation-api/internal/config"
	"github.com/limoncello/reservation-api/internal/model"
	"github.com/limoncello/reservation-api/internal/queue"
	"github.com/limoncello/reservation-api/internal/repository"
	"github.com/limoncello/reservation-api/internal/schedule"
)

// newBookingHandler builds a handler whose repositories are never reached:
// the tests below exercise only the validation layer, which runs before any
// database access.
func newBookingHandler(t *testing.T) *BookingHandler {
	t.Helper()
	reg, err := schedule.NewRegistry(schedule.DefaultVenueSchedules(), openCalendar{})
	require.NoError(t, err)
	engine := availability.NewEngine(reg, stubOccupancy{}, func() time.Time {
		return time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC)
	})
	cfg := config.Config{Timezone: time.UTC}
	return NewBookingHandler(cfg, engine, availability.NewSlotLocks(),
		&repository.BookingRepo{}, &repository.PersonRepo{}, &repository.VenueRepo{}, nil)
}

func postBooking(h *BookingHandler, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	_ = h.Create(e.NewContext(req, rec))
	return rec
}

func TestCreateBookingRejectsBadPayloads(t *testing.T) {
	h := newBookingHandler(t)

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"missing fields", `{"venue_id":2}`},
		{"zero party size", `{"venue_id":2,"identification":"123","first_name":"ANA","first_last_name":"RUIZ","email":"a@b.co","date":"2026-03-02","time":"12:00","party_size":0}`},
		{"negative party size", `{"venue_id":2,"identification":"123","first_name":"ANA","first_last_name":"RUIZ","email":"a@b.co","date":"2026-03-02","time":"12:00","party_size":-2}`},
		{"loose time", `{"venue_id":2,"identification":"123","first_name":"ANA","first_last_name":"RUIZ","email":"a@b.co","date":"2026-03-02","time":"12:00:00","party_size":2}`},
		{"loose date", `{"venue_id":2,"identification":"123","first_name":"ANA","first_last_name":"RUIZ","email":"a@b.co","date":"03/02/2026","time":"12:00","party_size":2}`},
	}
	for _, tc := range cases {
		rec := postBooking(h, tc.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, tc.name)
	}
}

// memoryBookings backs both BookingStore and the engine's occupancy reads,
// so admission decisions see inserts made moments earlier, as they would
// against the real table.
type memoryBookings struct {
	mu       sync.Mutex
	baseline int
	rows     []model.Booking
	nextID   uint64
}

func (m *memoryBookings) HasActiveFor(_ context.Context, personID, venueID uint64, date time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.rows {
		if b.Active && b.PersonID == personID && b.VenueID == venueID && b.BookingDate.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryBookings) Create(_ context.Context, b *model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	b.ID = m.nextID
	b.Active = true
	b.CreatedAt = time.Now()
	m.rows = append(m.rows, *b)
	return nil
}

func (m *memoryBookings) SumPartySizes(_ context.Context, venueID uint64, from, to time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := m.baseline
	for _, b := range m.rows {
		if !b.Active || b.VenueID != venueID {
			continue
		}
		at := b.BookingTime.At(b.BookingDate)
		if !at.Before(from) && !at.After(to) {
			total += b.PartySize
		}
	}
	return total, nil
}

func (m *memoryBookings) GetByID(context.Context, uint64) (model.Booking, error) {
	return model.Booking{}, repository.ErrBookingNotFound
}
func (m *memoryBookings) ListUpcomingByVenue(context.Context, uint64, time.Time) ([]model.Booking, error) {
	return nil, nil
}
func (m *memoryBookings) ListActiveByPerson(context.Context, uint64) ([]model.Booking, error) {
	return nil, nil
}
func (m *memoryBookings) Approve(context.Context, uint64) error { return nil }
func (m *memoryBookings) Cancel(context.Context, uint64) error  { return nil }

type memoryPeople struct {
	mu     sync.Mutex
	nextID uint64
	rows   map[string]model.Person
}

func (m *memoryPeople) GetByEmail(_ context.Context, email string) (model.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.rows[email]; ok {
		return p, nil
	}
	return model.Person{}, repository.ErrPersonNotFound
}

func (m *memoryPeople) GetByID(context.Context, uint64) (model.Person, error) {
	return model.Person{}, repository.ErrPersonNotFound
}

func (m *memoryPeople) Create(_ context.Context, p *model.Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rows == nil {
		m.rows = make(map[string]model.Person)
	}
	m.nextID++
	p.ID = m.nextID
	m.rows[p.Email] = *p
	return nil
}

func (m *memoryPeople) Update(_ context.Context, p model.Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[p.Email] = p
	return nil
}

type staticVenues struct{ venue model.Venue }

func (s staticVenues) GetByID(_ context.Context, id uint64) (model.Venue, error) {
	if id == s.venue.ID {
		return s.venue, nil
	}
	return model.Venue{}, repository.ErrVenueNotFound
}

// newAdmissionHandler wires a handler to in-memory stores so Create runs
// its full path: duplicate check, slot recomputation and insert, all under
// the slot lock. Published events are captured instead of hitting a broker.
func newAdmissionHandler(t *testing.T, store *memoryBookings) (*BookingHandler, func() []queue.BookingEvent) {
	t.Helper()
	reg, err := schedule.NewRegistry(schedule.DefaultVenueSchedules(), openCalendar{})
	require.NoError(t, err)
	engine := availability.NewEngine(reg, store, func() time.Time {
		return time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC)
	})
	h := NewBookingHandler(config.Config{Timezone: time.UTC}, engine, availability.NewSlotLocks(),
		store, &memoryPeople{}, staticVenues{venue: model.Venue{ID: 2, Name: "CENTRO", Email: "centro@example.com"}}, nil)

	var mu sync.Mutex
	var events []queue.BookingEvent
	h.Publish = func(_ context.Context, ev queue.BookingEvent) error {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ev)
		return nil
	}
	return h, func() []queue.BookingEvent {
		mu.Lock()
		defer mu.Unlock()
		return append([]queue.BookingEvent(nil), events...)
	}
}

func bookingBody(email, hhmm string, partySize int) string {
	return fmt.Sprintf(`{"venue_id":2,"identification":"900123","first_name":"ANA","first_last_name":"RUIZ","email":%q,"date":"2026-03-02","time":%q,"party_size":%d}`,
		email, hhmm, partySize)
}

func TestCreateBookingAdmitsAndPersists(t *testing.T) {
	store := &memoryBookings{}
	h, events := newAdmissionHandler(t, store)

	rec := postBooking(h, bookingBody("ana@example.com", "12:00", 4))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body bookingResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, uint64(1), body.ID)
	assert.Equal(t, "12:00", body.Time)
	assert.True(t, body.Active)

	require.Len(t, store.rows, 1)
	assert.Equal(t, 4, store.rows[0].PartySize)

	evs := events()
	require.Len(t, evs, 1)
	assert.Equal(t, queue.ActionCreated, evs[0].Action)
	assert.Equal(t, "CENTRO", evs[0].VenueName)
}

func TestCreateBookingSlotAtCapacity(t *testing.T) {
	store := &memoryBookings{baseline: 28}
	h, events := newAdmissionHandler(t, store)

	rec := postBooking(h, bookingBody("ana@example.com", "12:00", 3))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Empty(t, store.rows, "a full slot must not insert")
	assert.Empty(t, events())
}

func TestCreateBookingDuplicateDate(t *testing.T) {
	store := &memoryBookings{}
	h, _ := newAdmissionHandler(t, store)

	rec := postBooking(h, bookingBody("ana@example.com", "12:00", 2))
	require.Equal(t, http.StatusCreated, rec.Code)

	// Same guest, same venue, same date: rejected even at a free time.
	rec = postBooking(h, bookingBody("ana@example.com", "13:00", 2))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Len(t, store.rows, 1)
}

func TestCreateBookingUnknownVenue(t *testing.T) {
	h, _ := newAdmissionHandler(t, &memoryBookings{})
	rec := postBooking(h, `{"venue_id":9,"identification":"1","first_name":"A","first_last_name":"B","email":"a@b.co","date":"2026-03-02","time":"12:00","party_size":2}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// Two concurrent requests for the last remaining capacity must not both be
// admitted: the slot lock serializes the recheck with the insert.
func TestCreateBookingConcurrentLastSeats(t *testing.T) {
	store := &memoryBookings{baseline: 27}
	h, _ := newAdmissionHandler(t, store)

	codes := make(chan int, 2)
	var wg sync.WaitGroup
	for _, email := range []string{"first@example.com", "second@example.com"} {
		wg.Add(1)
		go func(email string) {
			defer wg.Done()
			codes <- postBooking(h, bookingBody(email, "12:00", 2)).Code
		}(email)
	}
	wg.Wait()
	close(codes)

	var created, rejected int
	for code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			rejected++
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, rejected)
	require.Len(t, store.rows, 1)
	assert.LessOrEqual(t, store.baseline+store.rows[0].PartySize, availability.CapacityLimit)
}

func TestContainsSlot(t *testing.T) {
	slots := []schedule.TimeOfDay{
		schedule.MustTimeOfDay("12:00"),
		schedule.MustTimeOfDay("12:15"),
	}
	assert.True(t, containsSlot(slots, schedule.MustTimeOfDay("12:15")))
	assert.False(t, containsSlot(slots, schedule.MustTimeOfDay("12:30")))
	assert.False(t, containsSlot(nil, schedule.MustTimeOfDay("12:00")))
}

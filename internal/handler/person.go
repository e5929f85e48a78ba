package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/limoncello/reservation-api/internal/availability"
	"github.com/limoncello/reservation-api/internal/model"
	"github.com/limoncello/reservation-api/internal/repository"
)

// PersonHandler serves the staff-facing guest directory.
type PersonHandler struct {
	People *repository.PersonRepo
}

func NewPersonHandler(people *repository.PersonRepo) *PersonHandler {
	if people == nil {
		panic("nil repository passed to NewPersonHandler")
	}
	return &PersonHandler{People: people}
}

type personResp struct {
	ID             uint64  `json:"id"`
	Identification string  `json:"identification"`
	FirstName      string  `json:"first_name"`
	SecondName     *string `json:"second_name,omitempty"`
	FirstLastName  string  `json:"first_last_name"`
	SecondLastName *string `json:"second_last_name,omitempty"`
	DateOfBirth    string  `json:"date_of_birth"`
	PhoneNumber    *string `json:"phone_number,omitempty"`
	Email          string  `json:"email"`
	SendEmail      bool    `json:"send_email"`
}

func toPersonResp(p model.Person) personResp {
	return personResp{
		ID:             p.ID,
		Identification: p.Identification,
		FirstName:      p.FirstName,
		SecondName:     p.SecondName,
		FirstLastName:  p.FirstLastName,
		SecondLastName: p.SecondLastName,
		DateOfBirth:    p.DateOfBirth.Format(availability.DateLayout),
		PhoneNumber:    p.PhoneNumber,
		Email:          p.Email,
		SendEmail:      p.SendEmail,
	}
}

// List returns all guests, newest first.
func (h *PersonHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	people, err := h.People.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]personResp, 0, len(people))
	for _, p := range people {
		out = append(out, toPersonResp(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"people": out})
}

// Get returns one guest record.
func (h *PersonHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid person id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.People.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPersonNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "person not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toPersonResp(p))
}

type createPersonReq struct {
	Identification string  `json:"identification"`
	FirstName      string  `json:"first_name"`
	SecondName     *string `json:"second_name"`
	FirstLastName  string  `json:"first_last_name"`
	SecondLastName *string `json:"second_last_name"`
	DateOfBirth    string  `json:"date_of_birth"`
	PhoneNumber    *string `json:"phone_number"`
	Email          string  `json:"email"`
	SendEmail      *bool   `json:"send_email"`
}

// Create registers a guest directly, without going through the booking form.
func (h *PersonHandler) Create(c echo.Context) error {
	var req createPersonReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Identification == "" || req.FirstName == "" || req.FirstLastName == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing required fields"})
	}
	dob := time.Time{}
	if req.DateOfBirth != "" {
		d, err := time.Parse(availability.DateLayout, req.DateOfBirth)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date_of_birth must be YYYY-MM-DD"})
		}
		dob = d
	}

	p := model.Person{
		Identification: req.Identification,
		FirstName:      req.FirstName,
		SecondName:     req.SecondName,
		FirstLastName:  req.FirstLastName,
		SecondLastName: req.SecondLastName,
		DateOfBirth:    dob,
		PhoneNumber:    req.PhoneNumber,
		Email:          req.Email,
		SendEmail:      true,
	}
	if req.SendEmail != nil {
		p.SendEmail = *req.SendEmail
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.People.Create(ctx, &p); err != nil {
		if errors.Is(err, repository.ErrDuplicatePerson) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "person already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create person failed"})
	}
	return c.JSON(http.StatusCreated, toPersonResp(p))
}

type updatePersonReq struct {
	FirstName      string  `json:"first_name"`
	SecondName     *string `json:"second_name"`
	FirstLastName  string  `json:"first_last_name"`
	SecondLastName *string `json:"second_last_name"`
	PhoneNumber    *string `json:"phone_number"`
	Email          string  `json:"email"`
	SendEmail      *bool   `json:"send_email"`
}

// Update rewrites a guest's contact fields.
func (h *PersonHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid person id"})
	}
	var req updatePersonReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.FirstName == "" || req.FirstLastName == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name, first_last_name and email required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.People.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPersonNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "person not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	p.FirstName = req.FirstName
	p.SecondName = req.SecondName
	p.FirstLastName = req.FirstLastName
	p.SecondLastName = req.SecondLastName
	p.PhoneNumber = req.PhoneNumber
	p.Email = req.Email
	if req.SendEmail != nil {
		p.SendEmail = *req.SendEmail
	}
	if err := h.People.Update(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update person failed"})
	}
	return c.JSON(http.StatusOK, toPersonResp(p))
}

// Delete removes a guest record; bookings cascade at the schema level.
func (h *PersonHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid person id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.People.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPersonNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "person not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete person failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

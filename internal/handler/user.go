package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/limoncello/reservation-api/internal/availability"
	"github.com/limoncello/reservation-api/internal/config"
	"github.com/limoncello/reservation-api/internal/mailer"
	"github.com/limoncello/reservation-api/internal/model"
	"github.com/limoncello/reservation-api/internal/repository"
	"github.com/limoncello/reservation-api/internal/utils"
)

// UserHandler manages staff accounts. Usernames and initial passwords are
// system generated; the credentials reach the new user by email.
type UserHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	People *repository.PersonRepo
	Roles  *repository.RoleRepo
	Mail   mailer.Sender
}

func NewUserHandler(cfg config.Config, u *repository.UserRepo, p *repository.PersonRepo,
	r *repository.RoleRepo, mail mailer.Sender) *UserHandler {
	if u == nil || p == nil || r == nil {
		panic("nil repository passed to NewUserHandler")
	}
	return &UserHandler{Cfg: cfg, Users: u, People: p, Roles: r, Mail: mail}
}

type createUserReq struct {
	Identification string `json:"identification"`
	FirstName      string `json:"first_name"`
	SecondName     string `json:"second_name"`
	FirstLastName  string `json:"first_last_name"`
	SecondLastName string `json:"second_last_name"`
	DateOfBirth    string `json:"date_of_birth"`
	PhoneNumber    string `json:"phone_number"`
	Email          string `json:"email"`
	RoleID         uint64 `json:"role_id"`
}

type userResp struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	IsLocked bool   `json:"is_locked"`
	IsActive bool   `json:"is_active"`
	PersonID uint64 `json:"person_id"`
}

func toUserResp(u model.User) userResp {
	return userResp{ID: u.ID, Username: u.Username, IsLocked: u.IsLocked, IsActive: u.IsActive, PersonID: u.PersonID}
}

// Create registers a staff member: a person record, a generated username
// and password, an optional role assignment, and a welcome email with the
// credentials.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Identification == "" || req.FirstName == "" || req.FirstLastName == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing required fields"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	dob := time.Time{}
	if req.DateOfBirth != "" {
		d, err := availability.ParseDate(req.DateOfBirth, h.Cfg.Timezone)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date_of_birth must be YYYY-MM-DD"})
		}
		dob = d
	}

	person := model.Person{
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
	if err := h.People.Create(ctx, &person); err != nil {
		if errors.Is(err, repository.ErrDuplicatePerson) {
			// Reuse the existing guest record for the account.
			existing, gerr := h.People.GetByEmail(ctx, req.Email)
			if gerr != nil {
				return c.JSON(http.StatusConflict, echo.Map{"error": "person already exists"})
			}
			person = existing
		} else {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save person failed"})
		}
	}

	username, err := h.uniqueUsername(ctx, person.FirstName, person.FirstLastName)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "build username failed"})
	}
	password, err := utils.GeneratePassword(10)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "generate password failed"})
	}

	uid, err := h.Users.Create(ctx, username, password, person.ID, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	if req.RoleID != 0 {
		if err := h.Roles.Assign(ctx, uid, req.RoleID); err != nil {
			c.Logger().Warnf("user: assign role %d failed: %v", req.RoleID, err)
		}
	}

	if h.Mail != nil {
		data := mailer.CredentialsEmail{Name: person.FullName(), Username: username, Password: password}
		if subject, body, rerr := mailer.RenderWelcome(data); rerr == nil {
			if serr := h.Mail.Send([]string{person.Email}, subject, body); serr != nil {
				c.Logger().Warnf("user: welcome email failed: %v", serr)
			}
		}
	}

	return c.JSON(http.StatusCreated, userResp{
		ID: uid, Username: username, IsActive: true, PersonID: person.ID,
	})
}

// uniqueUsername derives a username from the person's names, appending a
// counter when the base form is taken.
func (h *UserHandler) uniqueUsername(ctx context.Context, firstName, firstLastName string) (string, error) {
	base := utils.BuildUsername(firstName, firstLastName)
	if base == "" {
		return "", errors.New("empty username base")
	}
	candidate := base
	for i := 1; ; i++ {
		taken, err := h.Users.UsernameTaken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
}

// Get returns one staff account.
func (h *UserHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toUserResp(u))
}

// List returns all staff accounts.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]userResp, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResp(u))
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out})
}

type userFlagsReq struct {
	IsLocked bool `json:"is_locked"`
	IsActive bool `json:"is_active"`
}

// SetFlags locks/unlocks or activates/deactivates an account.
func (h *UserHandler) SetFlags(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req userFlagsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.SetFlags(ctx, id, req.IsLocked, req.IsActive); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update user failed"})
	}
	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toUserResp(u))
}

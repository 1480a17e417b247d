package app

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/stolasapp/courseware/internal/sec"
	"github.com/stolasapp/courseware/internal/storage"
	"github.com/stolasapp/courseware/internal/storage/db"
	"github.com/stolasapp/courseware/internal/validate"
)

const (
	msgWelcome         = "Welcome to the REST API project!"
	msgRouteNotFound   = "Route Not Found"
	msgCourseNotFound  = "No Courses found"
	msgForbidden       = "You are not Authorized"
	msgEmailInUse      = "This email is already in use"
	msgUnsupportedBody = "Request body must be JSON"
)

var (
	errCourseNotFound = echo.NewHTTPError(http.StatusNotFound, msgCourseNotFound)
	errForbidden      = echo.NewHTTPError(http.StatusForbidden, msgForbidden)
	errEmailInUse     = echo.NewHTTPError(http.StatusBadRequest, msgEmailInUse)
)

type handler struct {
	users   storage.Users
	courses storage.Courses
}

func (h handler) register(e *echo.Echo, prefix string, authn echo.MiddlewareFunc) {
	e.GET("/", h.welcome)

	api := e.Group(prefix)

	users := api.Group("/users")
	users.GET("", h.currentUser, authn)
	users.POST("", h.createUser)

	courses := api.Group("/courses")
	courses.GET("", h.listCourses)
	courses.POST("", h.createCourse, authn)
	courses.GET("/:id", h.getCourse)
	courses.PUT("/:id", h.updateCourse, authn)
	courses.DELETE("/:id", h.deleteCourse, authn)
}

func (h handler) welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, messageBody{Message: msgWelcome})
}

func (h handler) currentUser(c echo.Context) error {
	user, ok := sec.GetAuthenticatedUser(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, sec.AccessDenied)
	}
	return c.JSON(http.StatusOK, toIdentity(user))
}

func (h handler) createUser(c echo.Context) error {
	var req registrationRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := validate.Registration(
		req.FirstName,
		req.LastName,
		req.EmailAddress,
		req.Password,
	).Err(); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if _, err := h.users.GetUserByEmail(ctx, req.EmailAddress); err == nil {
		return errEmailInUse
	} else if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	hash, err := sec.HashPassword(req.Password)
	if errors.Is(err, sec.ErrPasswordTooLong) {
		return validate.Errors{validate.MsgPasswordLength}
	} else if err != nil {
		return err
	}

	_, err = h.users.CreateUser(ctx, db.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		EmailAddress: req.EmailAddress,
		PasswordHash: hash,
	})
	if errors.Is(err, storage.ErrAlreadyExists) {
		return errEmailInUse
	} else if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, "/")
	return c.NoContent(http.StatusCreated)
}

func (h handler) listCourses(c echo.Context) error {
	courses, err := h.courses.ListCourses(c.Request().Context())
	if err != nil {
		return err
	}
	resp := make([]courseResponse, 0, len(courses))
	for _, course := range courses {
		resp = append(resp, toCourse(course))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h handler) getCourse(c echo.Context) error {
	course, err := h.loadCourse(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCourse(course))
}

func (h handler) createCourse(c echo.Context) error {
	var req courseRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := validate.NewCourse(req.Title, req.Description, string(req.UserID)).Err(); err != nil {
		return err
	}
	ownerID, err := strconv.ParseInt(string(req.UserID), 10, 64)
	if err != nil {
		return validate.Errors{validate.MsgUserIDInvalid}
	}

	course, err := h.courses.CreateCourse(c.Request().Context(), db.Course{
		UserID:          ownerID,
		Title:           req.Title,
		Description:     req.Description,
		EstimatedTime:   toNullString(req.EstimatedTime),
		MaterialsNeeded: toNullString(req.MaterialsNeeded),
	})
	if errors.Is(err, storage.ErrInvalidReference) {
		return validate.Errors{validate.MsgUserIDInvalid}
	} else if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, course.Location())
	return c.NoContent(http.StatusCreated)
}

// updateCourse checks, in order: the body, the course's existence, and the
// caller's ownership.
func (h handler) updateCourse(c echo.Context) error {
	var req courseRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := validate.CourseUpdate(req.Title, req.Description).Err(); err != nil {
		return err
	}

	found, err := h.loadOwnedCourse(c)
	if err != nil {
		return err
	}

	course := found.Course
	course.Title = req.Title
	course.Description = req.Description
	if req.EstimatedTime != nil {
		course.EstimatedTime = toNullString(req.EstimatedTime)
	}
	if req.MaterialsNeeded != nil {
		course.MaterialsNeeded = toNullString(req.MaterialsNeeded)
	}

	if err = h.courses.UpdateCourse(c.Request().Context(), course); errors.Is(err, storage.ErrNotFound) {
		return errCourseNotFound
	} else if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h handler) deleteCourse(c echo.Context) error {
	found, err := h.loadOwnedCourse(c)
	if err != nil {
		return err
	}

	if err = h.courses.DeleteCourse(c.Request().Context(), found.ID); errors.Is(err, storage.ErrNotFound) {
		return errCourseNotFound
	} else if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// loadCourse resolves the :id path parameter. Identifiers that are not
// integers cannot match a course and are reported as not found.
func (h handler) loadCourse(c echo.Context) (db.CourseWithOwner, error) {
	courseID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return db.CourseWithOwner{}, errCourseNotFound
	}
	course, err := h.courses.GetCourse(c.Request().Context(), courseID)
	if errors.Is(err, storage.ErrNotFound) {
		return db.CourseWithOwner{}, errCourseNotFound
	}
	return course, err
}

func (h handler) loadOwnedCourse(c echo.Context) (db.CourseWithOwner, error) {
	course, err := h.loadCourse(c)
	if err != nil {
		return db.CourseWithOwner{}, err
	}
	user, _ := sec.GetAuthenticatedUser(c.Request().Context())
	if err = sec.Authorize(user, course.UserID); err != nil {
		return db.CourseWithOwner{}, errForbidden
	}
	return course, nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stolasapp/courseware/internal/storage/db"
)

// DB is a [Store] backed by a SQL database.
type DB struct {
	db      *sql.DB
	queries *db.Queries
}

// NewDB opens and migrates the database for the dialect and dsn.
func NewDB(ctx context.Context, dialect db.Dialect, dsn string, logger *slog.Logger) (*DB, error) {
	handle, err := db.Open(ctx, logger, dialect, dsn)
	if err != nil {
		return nil, err
	}
	return newDB(handle, dialect), nil
}

func newDB(handle *sql.DB, dialect db.Dialect) *DB {
	return &DB{
		db:      handle,
		queries: db.New(handle, dialect),
	}
}

// Close satisfies the [Store] interface.
func (d *DB) Close() error {
	return d.db.Close()
}

// GetUser satisfies the [Users] interface.
func (d *DB) GetUser(ctx context.Context, userID int64) (db.User, error) {
	user, err := d.queries.GetUser(ctx, userID)
	return user, wrap(err, "get user")
}

// GetUserByEmail satisfies the [Users] interface.
func (d *DB) GetUserByEmail(ctx context.Context, email string) (db.User, error) {
	user, err := d.queries.GetUserByEmail(ctx, email)
	return user, wrap(err, "get user by email")
}

// CreateUser satisfies the [Users] interface.
func (d *DB) CreateUser(ctx context.Context, user db.User) (db.User, error) {
	id, err := d.queries.InsertUser(ctx, db.InsertUserParams{
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		EmailAddress: user.EmailAddress,
		PasswordHash: user.PasswordHash,
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return db.User{}, ErrAlreadyExists
	case err != nil:
		return db.User{}, fmt.Errorf("create user: %w", err)
	}
	user.ID = id
	return user, nil
}

// ListCourses satisfies the [Courses] interface.
func (d *DB) ListCourses(ctx context.Context) ([]db.CourseWithOwner, error) {
	courses, err := d.queries.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// GetCourse satisfies the [Courses] interface.
func (d *DB) GetCourse(ctx context.Context, courseID int64) (db.CourseWithOwner, error) {
	course, err := d.queries.GetCourse(ctx, courseID)
	return course, wrap(err, "get course")
}

// CreateCourse satisfies the [Courses] interface. Users are never deleted, so
// checking the owner before the insert is race free; the foreign key remains
// the backstop.
func (d *DB) CreateCourse(ctx context.Context, course db.Course) (db.Course, error) {
	if _, err := d.GetUser(ctx, course.UserID); errors.Is(err, ErrNotFound) {
		return db.Course{}, ErrInvalidReference
	} else if err != nil {
		return db.Course{}, err
	}

	id, err := d.queries.InsertCourse(ctx, db.InsertCourseParams{
		UserID:          course.UserID,
		Title:           course.Title,
		Description:     course.Description,
		EstimatedTime:   course.EstimatedTime,
		MaterialsNeeded: course.MaterialsNeeded,
	})
	if err != nil {
		return db.Course{}, fmt.Errorf("create course: %w", err)
	}
	course.ID = id
	return course, nil
}

// UpdateCourse satisfies the [Courses] interface.
func (d *DB) UpdateCourse(ctx context.Context, course db.Course) error {
	n, err := d.queries.UpdateCourse(ctx, db.UpdateCourseParams{
		Title:           course.Title,
		Description:     course.Description,
		EstimatedTime:   course.EstimatedTime,
		MaterialsNeeded: course.MaterialsNeeded,
		ID:              course.ID,
	})
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	} else if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCourse satisfies the [Courses] interface.
func (d *DB) DeleteCourse(ctx context.Context, courseID int64) error {
	n, err := d.queries.DeleteCourse(ctx, courseID)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	} else if n == 0 {
		return ErrNotFound
	}
	return nil
}

func wrap(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

var _ Store = (*DB)(nil)

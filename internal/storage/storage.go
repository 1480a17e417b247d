// Package storage provides the state management for users and courses.
package storage

import (
	"context"

	"github.com/stolasapp/courseware/internal/storage/db"
)

const (
	// ErrNotFound is returned when a course or user cannot be found.
	ErrNotFound Error = "not found"
	// ErrAlreadyExists is returned if a user with the same email address
	// already exists.
	ErrAlreadyExists Error = "already exists"
	// ErrInvalidReference is returned when a course names an owner that does
	// not exist.
	ErrInvalidReference Error = "referenced user does not exist"
	// ErrInternal is returned for any other type of error.
	ErrInternal Error = "internal error"
)

// Error is an error type returned by the storage implementation.
type Error string

// Error satisfies [error].
func (e Error) Error() string { return string(e) }

// Users are the methods on a storage implementation that are responsible for
// accessing and creating users. Users are never updated or deleted.
type Users interface {
	// GetUser returns a single user with the specified ID. An [ErrNotFound] is
	// returned if the user ID does not exist.
	GetUser(ctx context.Context, userID int64) (db.User, error)
	// GetUserByEmail returns a single user with exactly the specified email
	// address. An [ErrNotFound] is returned if no user has that address.
	GetUserByEmail(ctx context.Context, email string) (db.User, error)
	// CreateUser inserts the user and returns it with its assigned ID. An
	// [ErrAlreadyExists] error is returned if the email address is in use;
	// this is the authoritative uniqueness check.
	CreateUser(ctx context.Context, user db.User) (db.User, error)
}

// Courses are the methods on a storage implementation that are responsible
// for accessing and modifying courses.
type Courses interface {
	// ListCourses returns every course with its owner summary.
	ListCourses(ctx context.Context) ([]db.CourseWithOwner, error)
	// GetCourse returns a single course with its owner summary. An
	// [ErrNotFound] is returned if the course ID does not exist.
	GetCourse(ctx context.Context, courseID int64) (db.CourseWithOwner, error)
	// CreateCourse inserts the course and returns it with its assigned ID. An
	// [ErrInvalidReference] is returned if the owner does not exist.
	CreateCourse(ctx context.Context, course db.Course) (db.Course, error)
	// UpdateCourse rewrites the mutable fields of a course. The owner
	// reference is never changed. An [ErrNotFound] is returned if the course
	// ID does not exist.
	UpdateCourse(ctx context.Context, course db.Course) error
	// DeleteCourse removes a course. An [ErrNotFound] is returned if the
	// course ID does not exist.
	DeleteCourse(ctx context.Context, courseID int64) error
}

// Store is the combination interface for [Users] and [Courses].
type Store interface {
	Users
	Courses
	// Close releases any resources held by the store. An error is returned if
	// the store cannot be cleanly closed.
	Close() error
}

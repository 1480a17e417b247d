//go:build integration

package storage_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/stolasapp/courseware/internal/storage"
	"github.com/stolasapp/courseware/internal/storage/db"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "courseware_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/courseware_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestPostgres_CRUD(t *testing.T) {
	store, err := storage.NewDB(t.Context(), db.DialectPostgres, dsn, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	user, err := store.CreateUser(t.Context(), db.User{
		FirstName:    "Ann",
		LastName:     "Lee",
		EmailAddress: "ann@example.com",
		PasswordHash: []byte("hash"),
	})
	require.NoError(t, err)

	_, err = store.CreateUser(t.Context(), user)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	course, err := store.CreateCourse(t.Context(), db.Course{UserID: user.ID, Title: "T", Description: "D"})
	require.NoError(t, err)

	got, err := store.GetCourse(t.Context(), course.ID)
	require.NoError(t, err)
	require.Equal(t, db.Owner{
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		EmailAddress: user.EmailAddress,
	}, got.Owner)

	course.Title = "Updated"
	require.NoError(t, store.UpdateCourse(t.Context(), course))

	courses, err := store.ListCourses(t.Context())
	require.NoError(t, err)
	require.Len(t, courses, 1)
	require.Equal(t, "Updated", courses[0].Title)

	require.NoError(t, store.DeleteCourse(t.Context(), course.ID))
	require.ErrorIs(t, store.DeleteCourse(t.Context(), course.ID), storage.ErrNotFound)

	_, err = store.CreateCourse(t.Context(), db.Course{UserID: user.ID + 1, Title: "T", Description: "D"})
	require.ErrorIs(t, err, storage.ErrInvalidReference)
}

package db

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
)

// DBTX is the subset of database/sql used by [Queries]. Both *sql.DB and
// *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries runs the statements used by the storage package against a DBTX,
// rewriting placeholders for the configured dialect.
type Queries struct {
	db      DBTX
	dialect Dialect
}

// New returns a Queries bound to db. Statements are written with "?"
// placeholders and rebound for dialect.
func New(db DBTX, dialect Dialect) *Queries {
	return &Queries{db: db, dialect: dialect}
}

const getUser = `
select id, first_name, last_name, email_address, password_hash
from users
where id = ?`

// GetUser returns the user with the given id, or [sql.ErrNoRows].
func (q *Queries) GetUser(ctx context.Context, id int64) (User, error) {
	row := q.db.QueryRowContext(ctx, q.rebind(getUser), id)
	var u User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.EmailAddress, &u.PasswordHash)
	return u, err
}

const getUserByEmail = `
select id, first_name, last_name, email_address, password_hash
from users
where email_address = ?`

// GetUserByEmail returns the user with the exact email address, or
// [sql.ErrNoRows].
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRowContext(ctx, q.rebind(getUserByEmail), email)
	var u User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.EmailAddress, &u.PasswordHash)
	return u, err
}

const insertUser = `
insert into users (first_name, last_name, email_address, password_hash)
values (?, ?, ?, ?)
on conflict (email_address) do nothing
returning id`

// InsertUserParams are the columns written by [Queries.InsertUser].
type InsertUserParams struct {
	FirstName    string
	LastName     string
	EmailAddress string
	PasswordHash []byte
}

// InsertUser creates a user and returns its id. If the email address is
// already taken, no row is written and [sql.ErrNoRows] is returned.
func (q *Queries) InsertUser(ctx context.Context, arg InsertUserParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, q.rebind(insertUser),
		arg.FirstName,
		arg.LastName,
		arg.EmailAddress,
		arg.PasswordHash,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const selectCourses = `
select c.id, c.user_id, c.title, c.description, c.estimated_time, c.materials_needed,
       u.id, u.first_name, u.last_name, u.email_address
from courses c
join users u on u.id = c.user_id`

const listCourses = selectCourses + `
order by c.id`

// ListCourses returns every course joined with its owner, ordered by id.
func (q *Queries) ListCourses(ctx context.Context) ([]CourseWithOwner, error) {
	rows, err := q.db.QueryContext(ctx, listCourses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CourseWithOwner
	for rows.Next() {
		var c CourseWithOwner
		if err := scanCourse(rows, &c); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getCourse = selectCourses + `
where c.id = ?`

// GetCourse returns the course joined with its owner, or [sql.ErrNoRows].
func (q *Queries) GetCourse(ctx context.Context, id int64) (CourseWithOwner, error) {
	row := q.db.QueryRowContext(ctx, q.rebind(getCourse), id)
	var c CourseWithOwner
	err := scanCourse(row, &c)
	return c, err
}

const insertCourse = `
insert into courses (user_id, title, description, estimated_time, materials_needed)
values (?, ?, ?, ?, ?)
returning id`

// InsertCourseParams are the columns written by [Queries.InsertCourse].
type InsertCourseParams struct {
	UserID          int64
	Title           string
	Description     string
	EstimatedTime   sql.NullString
	MaterialsNeeded sql.NullString
}

// InsertCourse creates a course and returns its id.
func (q *Queries) InsertCourse(ctx context.Context, arg InsertCourseParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, q.rebind(insertCourse),
		arg.UserID,
		arg.Title,
		arg.Description,
		arg.EstimatedTime,
		arg.MaterialsNeeded,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const updateCourse = `
update courses
set title = ?, description = ?, estimated_time = ?, materials_needed = ?, updated_at = current_timestamp
where id = ?`

// UpdateCourseParams are the columns written by [Queries.UpdateCourse]. The
// owner reference is intentionally absent.
type UpdateCourseParams struct {
	Title           string
	Description     string
	EstimatedTime   sql.NullString
	MaterialsNeeded sql.NullString
	ID              int64
}

// UpdateCourse rewrites the mutable columns of a course and reports the
// number of rows affected.
func (q *Queries) UpdateCourse(ctx context.Context, arg UpdateCourseParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, q.rebind(updateCourse),
		arg.Title,
		arg.Description,
		arg.EstimatedTime,
		arg.MaterialsNeeded,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteCourse = `
delete from courses
where id = ?`

// DeleteCourse removes a course and reports the number of rows affected.
func (q *Queries) DeleteCourse(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, q.rebind(deleteCourse), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCourse(row scanner, c *CourseWithOwner) error {
	return row.Scan(
		&c.ID,
		&c.UserID,
		&c.Title,
		&c.Description,
		&c.EstimatedTime,
		&c.MaterialsNeeded,
		&c.Owner.ID,
		&c.Owner.FirstName,
		&c.Owner.LastName,
		&c.Owner.EmailAddress,
	)
}

// rebind converts "?" placeholders to the "$n" form postgres expects. The
// statements in this file contain no literal question marks.
func (q *Queries) rebind(query string) string {
	if q.dialect != DialectPostgres {
		return query
	}
	var (
		out strings.Builder
		n   int
	)
	out.Grow(len(query) + 8) //nolint:mnd // room for a few multi-digit placeholders
	for _, r := range query {
		if r != '?' {
			out.WriteRune(r)
			continue
		}
		n++
		out.WriteByte('$')
		out.WriteString(strconv.Itoa(n))
	}
	return out.String()
}

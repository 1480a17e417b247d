package db

import "database/sql"

// User is a registered account. PasswordHash holds the bcrypt digest and is
// never serialized by the API layer.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	EmailAddress string
	PasswordHash []byte
}

// Owner is the public summary of the User that owns a Course.
type Owner struct {
	ID           int64
	FirstName    string
	LastName     string
	EmailAddress string
}

// Course is a course record. UserID references the owning User and is not
// changed after creation.
type Course struct {
	ID              int64
	UserID          int64
	Title           string
	Description     string
	EstimatedTime   sql.NullString
	MaterialsNeeded sql.NullString
}

// CourseWithOwner is a Course joined with its owner's summary.
type CourseWithOwner struct {
	Course
	Owner Owner
}

package app

import (
	"bytes"
	"database/sql"
	"encoding/json"

	"github.com/stolasapp/courseware/internal/storage/db"
)

type registrationRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	Password     string `json:"password"`
}

// courseRequest is the body of course creation and update. A nil optional
// field was absent from the body.
type courseRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	UserID          ownerRef `json:"userId"`
	EstimatedTime   *string  `json:"estimatedTime"`
	MaterialsNeeded *string  `json:"materialsNeeded"`
}

// ownerRef is an owner reference given as either a JSON number or a string.
type ownerRef string

func (r *ownerRef) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*r = ownerRef(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*r = ownerRef(num)
	return nil
}

type identityResponse struct {
	ID    int64  `json:"Id"`
	Name  string `json:"Name"`
	Email string `json:"Email"`
}

func toIdentity(user db.User) identityResponse {
	return identityResponse{
		ID:    user.ID,
		Name:  user.DisplayName(),
		Email: user.EmailAddress,
	}
}

type ownerResponse struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
}

type courseResponse struct {
	ID              int64         `json:"id"`
	UserID          int64         `json:"userId"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	EstimatedTime   *string       `json:"estimatedTime"`
	MaterialsNeeded *string       `json:"materialsNeeded"`
	User            ownerResponse `json:"user"`
}

func toCourse(course db.CourseWithOwner) courseResponse {
	return courseResponse{
		ID:              course.ID,
		UserID:          course.UserID,
		Title:           course.Title,
		Description:     course.Description,
		EstimatedTime:   fromNullString(course.EstimatedTime),
		MaterialsNeeded: fromNullString(course.MaterialsNeeded),
		User:            ownerResponse(course.Owner),
	}
}

// toNullString maps an absent or null field to NULL. Empty strings are kept.
func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

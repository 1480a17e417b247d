package db

import "strconv"

// DisplayName composes the user's first and last name.
func (u User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// Location returns the canonical path of the course, relative to the API root.
func (c Course) Location() string {
	return "/courses/" + strconv.FormatInt(c.ID, 10)
}

package validate

// Violation messages reported for the API's request bodies.
const (
	MsgFirstName      = `Please provide a "First Name"`
	MsgLastName       = `Please provide a "Last Name"`
	MsgEmail          = `Please provide a value for "email"`
	MsgEmailFormat    = `Please provide a valid email address for "email"`
	MsgPassword       = `Please provide a value for "password"`
	MsgPasswordLength = `Please provide a value for "password" that is between 8 and 20 characters in length`
	MsgTitle          = `Please provide a "Title"`
	MsgDescription    = `Please provide a "Description"`
	MsgUserID         = `Please provide a "UserID"`
	MsgUserIDInvalid  = `Please provide a valid "UserID"`
)

// Password length bounds, inclusive.
const (
	MinPasswordLen = 8
	MaxPasswordLen = 20
)

// Registration validates a new user.
func Registration(firstName, lastName, email, password string) Errors {
	return Validate(
		F("firstName", firstName, Required(MsgFirstName)),
		F("lastName", lastName, Required(MsgLastName)),
		F("emailAddress", email, Required(MsgEmail), Email(MsgEmailFormat)),
		F("password", password,
			Required(MsgPassword),
			Length(MinPasswordLen, MaxPasswordLen, MsgPasswordLength),
		),
	)
}

// NewCourse validates a course creation request. userID is the raw owner
// reference from the payload.
func NewCourse(title, description, userID string) Errors {
	return Validate(
		F("title", title, Required(MsgTitle)),
		F("description", description, Required(MsgDescription)),
		F("userId", userID, Required(MsgUserID), ID(MsgUserIDInvalid)),
	)
}

// CourseUpdate validates a course update request.
func CourseUpdate(title, description string) Errors {
	return Validate(
		F("title", title, Required(MsgTitle)),
		F("description", description, Required(MsgDescription)),
	)
}

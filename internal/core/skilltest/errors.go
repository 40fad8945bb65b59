package skilltest

import "errors"

var (
	ErrNotFound            = errors.New("skilltest: not found")
	ErrRecruiterNotFound   = errors.New("skilltest: recruiter employee not found")
	ErrCampusNotAssigned   = errors.New("skilltest: recruiter has no campus assigned")
	ErrInvalidRecruiterID  = errors.New("skilltest: recruiter employee id must be positive")
	ErrDateOfBirthRequired = errors.New("skilltest: date of birth is required")

	// ErrAadhaarAlreadyExists / ErrContactAlreadyExists は一意制約違反の変換先です。
	ErrAadhaarAlreadyExists = errors.New("skilltest: aadhaar number already exists")
	ErrContactAlreadyExists = errors.New("skilltest: contact number already exists")
)

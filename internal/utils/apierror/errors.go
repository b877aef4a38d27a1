package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Machine-readable error kinds, stable across releases. Clients branch on
// these, never on the message text.
const (
	KindAuthentication = "authentication_failure"
	KindNotFound       = "not_found"
	KindValidation     = "validation_failure"
	KindStorage        = "storage_failure"
	KindBadRequest     = "bad_request"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

type StructuredError struct {
	Kind   string              `json:"kind"`
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

var (
	MalformedJSONError  = NewSimple(400, KindValidation, "Malformed JSON body")
	InternalServerError = NewSimple(500, KindStorage, "Internal server error")

	NotFoundError         = NewSimple(404, KindNotFound, "Resource not found")
	InvalidMediaTypeError = NewSimple(415, KindBadRequest, "Unsupported media type")

	/*
	 * Used for authentications
	 */
	InvalidAuthTokenError       = NewSimple(401, KindAuthentication, "Missing or invalid credentials")
	UnauthorizedError           = NewSimple(401, KindAuthentication, "Authentication required")
	IDPInvalidPasswordError     = NewSimple(400, KindValidation, "Provided password does not meet requirements")
	IDPExistingEmailError       = NewSimple(400, KindBadRequest, "Email already exists")
	IDPUserNotFoundError        = NewSimple(404, KindNotFound, "User not found")
	IDPUserNotConfirmedError    = NewSimple(400, KindBadRequest, "User is not confirmed yet")
	IDPCredentialsMismatchError = NewSimple(400, KindAuthentication, "Credentials mismatch")
	IDPConfirmCodeMismatchError = NewSimple(400, KindBadRequest, "Confirmation code mismatch")
	IDPConfirmCodeExpiredError  = NewSimple(400, KindBadRequest, "Confirmation code has expired")
	IDPInvalidParameterError    = NewSimple(400, KindBadRequest, "Invalid parameters provided, the user is likely already verified")

	/*
	 * Used for uploads
	 */
	MissingFileError     = NewSimple(400, KindValidation, "Missing multipart file field")
	MissingFileNameError = NewSimple(400, KindValidation, "Uploaded file has no name")
)

func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	ok := errors.As(err, &ve)
	if !ok {
		return nil
	}

	problems := map[string][]string{}
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())

		switch fe.Tag() {
		case "required":
			problems[field] = append(problems[field], "This field is required")
		case "min":
			problems[field] = append(problems[field], "Value is too short, min: "+fe.Param())
		case "max":
			problems[field] = append(problems[field], "Value is too long, max: "+fe.Param())
		case "oneof":
			problems[field] = append(problems[field], "Value must be one of: "+fe.Param())
		case "hasupper":
			problems[field] = append(problems[field], "Value must have at least one uppercase character")
		case "haslower":
			problems[field] = append(problems[field], "Value must have at least one lowercase character")
		case "hasdigit":
			problems[field] = append(problems[field], "Value must have at least one number")
		case "hasspecial":
			problems[field] = append(problems[field], "Value must have at least one special character")
		case "nospaces":
			problems[field] = append(problems[field], "Value must not contain whitespace")
		case "email":
			problems[field] = append(problems[field], "Value must be a valid email address")
		case "url":
			problems[field] = append(problems[field], "Value must be a valid URL")

		default:
			problems[field] = append(problems[field], "Invalid value provided")
		}
	}

	return &StructuredError{
		Kind:   KindValidation,
		Errors: problems,
		Status: http.StatusBadRequest,
	}
}

func NewSimple(status int, kind, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Kind: kind, Message: msg}
}

func NewInvalidParamTypeError(name, dataType string) *APIError {
	return NewSimple(http.StatusBadRequest, KindValidation, "Parameter '%s' has invalid type, expected: %s", name, dataType)
}

func NewFileTooLargeError(maxBytes int64) *APIError {
	return NewSimple(http.StatusBadRequest, KindValidation, "File exceeds the maximum size of %d bytes", maxBytes)
}

func NewInvalidFileExtError(ext string) *APIError {
	return NewSimple(http.StatusBadRequest, KindValidation, "File extension '%s' is not allowed", ext)
}

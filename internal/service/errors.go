package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"coopcycle-service/internal/repository"

	"github.com/go-playground/validator/v10"
)

var ErrBadRequest = errors.New("bad request")

// Alert keys reported to clients.
const (
	KeyIDExists   = "idexists"
	KeyIDNull     = "idnull"
	KeyIDInvalid  = "idinvalid"
	KeyIDNotFound = "idnotfound"
	KeyValidation = "validation"
)

// AlertError is a client error about one entity. Key is the machine code,
// Fields lists the failed rule per JSON field for validation errors.
type AlertError struct {
	Entity  string
	Key     string
	Message string
	Fields  map[string]string

	err error
}

func (e *AlertError) Error() string {
	return fmt.Sprintf("%s: %s", e.Entity, e.Message)
}

func (e *AlertError) Unwrap() error {
	return e.err
}

func badRequest(entity, key, message string) *AlertError {
	return &AlertError{Entity: entity, Key: key, Message: message, err: ErrBadRequest}
}

// NotFound reports that no entity of this type has the requested id.
func NotFound(entity string) *AlertError {
	return &AlertError{Entity: entity, Key: KeyIDNotFound, Message: "Entity not found", err: repository.ErrNotFound}
}

// validationError turns validator output into an AlertError. Any other
// error from the validator is a programming error and is returned as is.
func validationError(entity string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
		names = append(names, fe.Field())
	}
	sort.Strings(names)

	return &AlertError{
		Entity:  entity,
		Key:     KeyValidation,
		Message: "invalid " + strings.Join(names, ", "),
		Fields:  fields,
		err:     ErrBadRequest,
	}
}

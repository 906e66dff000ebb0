package logquery

import "errors"

var (
	// ErrInvalidContent rejects a create call whose content is not a JSON object.
	ErrInvalidContent = errors.New("content must be a JSON object")

	// ErrQueryFailed wraps any store failure during a list call.
	ErrQueryFailed = errors.New("query failed")

	// ErrInsertFailed wraps any store failure during a create call.
	ErrInsertFailed = errors.New("insert failed")
)

// Kind classifies an error returned by the service.
type Kind int

const (
	KindNone Kind = iota
	// KindValidation is correctable by the client.
	KindValidation
	// KindStore is a backend failure the client cannot correct.
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindStore:
		return "store"
	}
	return "unknown"
}

// KindOf reports which category err belongs to. Unrecognized errors count as
// store failures so they are never shown to clients as their own fault.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidContent):
		return KindValidation
	}
	return KindStore
}

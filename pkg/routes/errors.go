package routes

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrRoutesDirectoryMissing  = errors.New("routes directory not found")
	ErrInvalidRoutePath        = errors.New("invalid route path")
	ErrDuplicateRouteParameter = errors.New("duplicate route parameter")
	ErrUnknownRouteParameter   = errors.New("unknown route parameter")
	ErrMissingRouteParameter   = errors.New("missing route parameter")
)

// ErrorKind is a coarse-grained categorization for compiler errors.
type ErrorKind string

const (
	KindRoutesDirectoryMissing  ErrorKind = "routes_directory_missing"
	KindInvalidRoutePath        ErrorKind = "invalid_route_path"
	KindDuplicateRouteParameter ErrorKind = "duplicate_route_parameter"
	KindUnknownRouteParameter   ErrorKind = "unknown_route_parameter"
	KindMissingRouteParameter   ErrorKind = "missing_route_parameter"
)

var kindSentinels = map[ErrorKind]error{
	KindRoutesDirectoryMissing:  ErrRoutesDirectoryMissing,
	KindInvalidRoutePath:        ErrInvalidRoutePath,
	KindDuplicateRouteParameter: ErrDuplicateRouteParameter,
	KindUnknownRouteParameter:   ErrUnknownRouteParameter,
	KindMissingRouteParameter:   ErrMissingRouteParameter,
}

// Error is a compiler error with a kind, the offending path or pattern and a
// human-readable message.
type Error struct {
	Kind ErrorKind
	Op   string
	Path string // route path or pattern the error is about
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := e.Msg
	if base == "" {
		base = string(e.Kind)
	}
	if e.Op != "" {
		base = e.Op + ": " + base
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is makes errors.Is(err, ErrDuplicateRouteParameter) and friends work.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	return kindSentinels[e.Kind] == target
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind == kind
	}
	return false
}

// RoutesDirectoryMissing reports a routes root that does not exist or is not
// a directory.
func RoutesDirectoryMissing(dir string, cause error) error {
	return &Error{
		Kind: KindRoutesDirectoryMissing,
		Op:   "discover",
		Path: dir,
		Msg:  fmt.Sprintf("Routes directory not found at %s", dir),
		Err:  cause,
	}
}

// InvalidRoutePath reports a file name outside the allowed character set.
func InvalidRoutePath(path string) error {
	return &Error{
		Kind: KindInvalidRoutePath,
		Op:   "normalize",
		Path: path,
		Msg:  fmt.Sprintf("Invalid route path %q. Routes must conform to the regex %s", path, validPathRe),
	}
}

// DuplicateRouteParameter reports two tokens of a pattern that sanitize to
// the same parameter name.
func DuplicateRouteParameter(token, name, pattern string) error {
	return &Error{
		Kind: KindDuplicateRouteParameter,
		Op:   "classify",
		Path: pattern,
		Msg:  fmt.Sprintf("Duplicate route parameter %q (parsed: %q) in %q", token, name, pattern),
	}
}

package inferschema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/inferschema/i18n"
)

// Error codes carried in Error.Code.
const (
	CodeInvalidSample         = "invalid_sample"
	CodeMixedType             = "mixed_type"
	CodeSchemaNotSerializable = "schema_not_serializable"
	CodeParseError            = "parse_error"
	CodeTypeMismatch          = "type_mismatch"
)

// Sentinels matched by errors.Is against *Error values carrying the
// corresponding code.
var (
	ErrInvalidSample         = errors.New("inferschema: invalid sample")
	ErrMixedType             = errors.New("inferschema: mixed type array")
	ErrSchemaNotSerializable = errors.New("inferschema: schema not serializable")
	ErrParse                 = errors.New("inferschema: parse error")
	ErrTypeMismatch          = errors.New("inferschema: type mismatch")
)

var codeSentinels = map[string]error{
	CodeInvalidSample:         ErrInvalidSample,
	CodeMixedType:             ErrMixedType,
	CodeSchemaNotSerializable: ErrSchemaNotSerializable,
	CodeParseError:            ErrParse,
	CodeTypeMismatch:          ErrTypeMismatch,
}

// Error reports a failed schema derivation or deserialization.
type Error struct {
	Code    string // One of the codes listed above.
	Path    string // JSON Pointer of the offending value (for example: /items/2).
	Message string
	// Expected and Actual are set for type_mismatch and parse_error.
	Expected Kind
	Actual   Kind
	Cause    error // Optional: underlying error.
}

func (e *Error) Error() string {
	b := &strings.Builder{}
	path := e.Path
	if path == "" {
		path = "/"
	}
	// e.g. type_mismatch at /x: ...
	fmt.Fprintf(b, "%s at %s", e.Code, path)
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches the sentinel registered for e.Code.
func (e *Error) Is(target error) bool {
	s, ok := codeSentinels[e.Code]
	return ok && s == target
}

// AsError extracts an *Error from err using errors.As internally.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func errInvalidSample() error {
	return &Error{Code: CodeInvalidSample, Path: "/", Message: i18n.T(CodeInvalidSample, nil)}
}

func errMixedType(path string, want, got any) error {
	return &Error{
		Code:    CodeMixedType,
		Path:    path,
		Message: i18n.T(CodeMixedType, map[string]string{"expected": fmt.Sprintf("%T", want), "actual": fmt.Sprintf("%T", got)}),
	}
}

func errNotSerializable(cause error) error {
	return &Error{
		Code:    CodeSchemaNotSerializable,
		Path:    "/",
		Message: i18n.T(CodeSchemaNotSerializable, map[string]string{"cause": cause.Error()}),
		Cause:   cause,
	}
}

func errParse(path string, expected, actual Kind, cause error) error {
	return &Error{
		Code:     CodeParseError,
		Path:     path,
		Message:  i18n.T(CodeParseError, map[string]string{"expected": expected.String()}),
		Expected: expected,
		Actual:   actual,
		Cause:    cause,
	}
}

func errTypeMismatch(path string, expected Kind, raw any) error {
	actual := KindOf(raw)
	return &Error{
		Code: CodeTypeMismatch,
		Path: path,
		Message: i18n.T(CodeTypeMismatch, map[string]string{
			"expected": expected.String(),
			"actual":   fmt.Sprintf("%s (%T)", actual, raw),
		}),
		Expected: expected,
		Actual:   actual,
	}
}

// atPath re-roots err under prefix when it is an *Error. Other errors,
// including wrappers around an *Error, are wrapped with the prefix so their
// context is kept.
func atPath(err error, prefix string) error {
	e, ok := err.(*Error)
	if !ok {
		return fmt.Errorf("%s: %w", prefix, err)
	}
	cp := *e
	if cp.Path == "" || cp.Path == "/" {
		cp.Path = prefix
	} else {
		cp.Path = prefix + cp.Path
	}
	return &cp
}

package tasl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/tasl/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// A Value's runtime kind or shape disagrees with its Type.
	CodeSchemaMismatch = "schema_mismatch"
	// A numeric literal or an index (URI rank, coproduct rank, varint) is out of bounds.
	CodeOutOfRange = "out_of_range"
	// A lexical form cannot be parsed per its datatype.
	CodeMalformedLiteral = "malformed_literal"
	// Decoding ran past the end of the buffer.
	CodeTruncated = "truncated"
	// Schema construction or schema document errors.
	CodeInvalidSchema = "invalid_schema"
	// A configured limit was exceeded.
	CodeTooBig = "too_big"
	// Bytes remain after the last label was decoded.
	CodeTrailingData = "trailing_data"
	// A reference index does not address an element of its target label (validator only).
	CodeDanglingReference = "dangling_reference"
)

// Issue represents a single encode, decode or validation failure.
type Issue struct {
	Path    string // JSON Pointer into the instance (for example: /ex:Person/3/ex:knows).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: expected type, datatype, limits.
	Cause   error  // Optional: underlying error.
	Offset  int64  // Byte offset in the encoded buffer (-1 when unknown).
	// Params holds the numbers behind range and limit issues, for example
	// {"option": 3, "options": 2} or {"count": 9, "limit": 8}.
	Params map[string]any
}

// Issues is a collection of issues that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. schema_mismatch at /ex:Person/0: expected product
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Hint != "" {
			fmt.Fprintf(b, ": %s", it.Hint)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the causes of all issues to errors.Is and errors.As.
func (iss Issues) Unwrap() []error {
	var errs []error
	for _, it := range iss {
		if it.Cause != nil {
			errs = append(errs, it.Cause)
		}
	}
	return errs
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether err carries an issue with the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// NewIssue builds an Issue with the localized message for code.
func NewIssue(path []string, code, hint string) Issue {
	return Issue{Path: Pointer(path), Code: code, Message: i18n.T(code, nil), Hint: hint, Offset: -1}
}

// Fail returns a single-issue error.
func Fail(path []string, code, hint string) error {
	return Issues{NewIssue(path, code, hint)}
}

// Pointer renders path segments as an RFC 6901 JSON Pointer.
func Pointer(path []string) string {
	if len(path) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, seg := range path {
		b.WriteByte('/')
		b.WriteString(escapeSegment(seg))
	}
	return b.String()
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapeSegment(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}
	return pointerEscaper.Replace(s)
}

// IndexSegment formats an array index as a path segment.
func IndexSegment(i int) string { return strconv.Itoa(i) }

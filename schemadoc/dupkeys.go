package schemadoc

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/reoring/tasl"
)

type frame struct {
	object       bool
	keys         map[string]struct{}
	key          string
	index        int
	expectingKey bool
}

// duplicateKeys walks the token stream of a JSON document and reports every
// key that occurs twice in the same object. Decoding into a map keeps only
// the last occurrence, which would silently drop a label or component.
// Syntax errors stop the walk; the full decode reports them.
func duplicateKeys(data []byte) tasl.Issues {
	dec := json.NewDecoder(bytes.NewReader(data))
	var iss tasl.Issues
	var stack []frame
	for {
		tok, err := dec.Token()
		if err != nil {
			return iss
		}
		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				stack = append(stack, frame{object: true, keys: map[string]struct{}{}, expectingKey: true})
			case '[':
				stack = append(stack, frame{})
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				valueDone(stack)
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].object && stack[n-1].expectingKey {
				top := &stack[n-1]
				if _, dup := top.keys[v]; dup {
					iss = append(iss, tasl.NewIssue(append(pathOf(stack[:n-1]), v), tasl.CodeInvalidSchema, fmt.Sprintf("duplicate key %q", v)))
				}
				top.keys[v] = struct{}{}
				top.key = v
				top.expectingKey = false
				continue
			}
			valueDone(stack)
		default:
			valueDone(stack)
		}
	}
}

// valueDone records that the innermost container received a complete value.
func valueDone(stack []frame) {
	if len(stack) == 0 {
		return
	}
	top := &stack[len(stack)-1]
	if top.object {
		top.expectingKey = true
	} else {
		top.index++
	}
}

func pathOf(stack []frame) []string {
	path := make([]string, 0, len(stack)+1)
	for _, f := range stack {
		if f.object {
			path = append(path, f.key)
		} else {
			path = append(path, strconv.Itoa(f.index))
		}
	}
	return path
}

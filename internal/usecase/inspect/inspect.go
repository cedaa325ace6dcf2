package inspect

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/aalvaropc/neuroreport/internal/domain"
)

// Query evaluates a JSONPath expression against a render manifest and returns
// the result as a string. Scalars come back verbatim; arrays and objects are
// re-encoded as JSON. Meant for scripting, e.g.
//
//	neuroreport inspect -r <id> -p '$.reportlets[?(@.status=="missing")].selector'
func Query(m domain.RenderManifest, expr string) (string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return "", &domain.OpError{
			Op:   "inspect.query",
			Kind: domain.KindExecution,
			Err:  fmt.Errorf("empty jsonpath expression"),
		}
	}

	// Round through JSON so jsonpath sees plain maps/slices.
	b, err := json.Marshal(m)
	if err != nil {
		return "", &domain.OpError{
			Op:   "inspect.query",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return "", &domain.OpError{
			Op:   "inspect.query",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	val, err := jsonpath.Get(expr, doc)
	if err != nil {
		return "", &domain.OpError{
			Op:   "inspect.query",
			Kind: domain.KindExecution,
			Err:  fmt.Errorf("jsonpath %q: %w", expr, err),
		}
	}

	return toString(val)
}

func toString(v any) (string, error) {
	if arr, ok := v.([]any); ok {
		if len(arr) == 1 {
			return toString(arr[0])
		}
		b, err := json.Marshal(arr)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case float64, bool:
		return fmt.Sprint(t), nil
	case map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return fmt.Sprint(t), nil
	}
}

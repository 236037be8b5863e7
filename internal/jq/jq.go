package jq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
)

// Query runs a jq expression over v. v is normalized through JSON first so
// that any value with JSON semantics can be queried. A single result is
// returned as is, several results are collected into a slice.
func Query(ctx context.Context, v any, expr string) (any, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, errors.New("jq query is empty")
	}
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse jq query: %w", err)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var input any
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, err
	}

	var results []any
	iter := query.RunWithContext(ctx, input)
	for {
		result, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := result.(error); ok {
			var halt *gojq.HaltError
			if errors.As(err, &halt) && halt.Value() == nil {
				break
			}
			return nil, fmt.Errorf("jq query failed: %w", err)
		}
		results = append(results, result)
	}

	if len(results) == 1 {
		return results[0], nil
	}
	if results == nil {
		results = []any{}
	}
	return results, nil
}

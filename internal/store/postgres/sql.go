package postgres

import (
	"context"
	"fmt"

	"skombo/internal/store"
)

func (c *Client) RunSQL(ctx context.Context, query string, args ...any) (*store.SQLResult, error) {
	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running sql: %w", err)
	}
	defer rows.Close()

	fieldDescriptions := rows.FieldDescriptions()
	result := &store.SQLResult{
		Columns: make([]string, 0, len(fieldDescriptions)),
		Rows:    make([][]any, 0),
	}
	for _, fd := range fieldDescriptions {
		result.Columns = append(result.Columns, fd.Name)
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("getting row values: %w", err)
		}
		result.Rows = append(result.Rows, values)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sql rows: %w", err)
	}

	return result, nil
}

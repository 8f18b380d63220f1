package resolve

import "skombo/internal/catalog"

// Context carries the state of one combo's resolution. Sequence groups are
// consumed in catalog order across every token of the combo. A Context must
// not be shared between combos.
type Context struct {
	consumed map[string]int
}

func NewContext() *Context {
	return &Context{consumed: make(map[string]int)}
}

// Next hands out the next n rows of a sequence group and advances its
// counter. Fewer rows are returned once the group runs out.
func (c *Context) Next(group string, rows []catalog.Entry, n int) []catalog.Entry {
	if n <= 0 {
		return nil
	}
	key := catalog.Fold(group)
	start := c.consumed[key]
	end := start + n
	c.consumed[key] = end

	if start >= len(rows) {
		return nil
	}
	if end > len(rows) {
		end = len(rows)
	}
	return append([]catalog.Entry(nil), rows[start:end]...)
}

// Consumed reports how many rows of group have been handed out.
func (c *Context) Consumed(group string) int {
	return c.consumed[catalog.Fold(group)]
}

package repository

import (
	"fmt"
	"strings"
)

// conditions accumulates positional WHERE clauses. Each expression carries a single %d
// verb (or %[1]d when the placeholder repeats) that receives the next $n index.
type conditions struct {
	clauses []string
	args    []interface{}
}

func (c *conditions) add(expr string, value interface{}) {
	c.args = append(c.args, value)
	c.clauses = append(c.clauses, fmt.Sprintf(expr, len(c.args)))
}

func (c *conditions) raw(expr string) {
	c.clauses = append(c.clauses, expr)
}

// next reserves a placeholder for an argument used outside the WHERE clause.
func (c *conditions) next(value interface{}) string {
	c.args = append(c.args, value)
	return fmt.Sprintf("$%d", len(c.args))
}

func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

func likePattern(term string) string {
	return "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
}

func normalizeKey(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

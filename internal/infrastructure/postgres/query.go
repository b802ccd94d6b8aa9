package postgres

import (
	"strconv"
	"strings"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
)

// clause collects SQL fragments with positional arguments. Each "?" in a
// fragment is replaced by the next $n placeholder.
type clause struct {
	parts []string
	args  []any
}

func (c *clause) add(expr string, arg any) {
	c.args = append(c.args, arg)
	c.parts = append(c.parts, strings.Replace(expr, "?", "$"+strconv.Itoa(len(c.args)), 1))
}

func (c *clause) empty() bool { return len(c.parts) == 0 }

// where renders the collected predicates AND-ed, or nothing.
func (c *clause) where() string {
	if c.empty() {
		return ""
	}
	return " WHERE " + strings.Join(c.parts, " AND ")
}

func (c *clause) set() string { return strings.Join(c.parts, ", ") }

// next returns the placeholder the next argument will get.
func (c *clause) next(arg any) string {
	c.args = append(c.args, arg)
	return "$" + strconv.Itoa(len(c.args))
}

func setPtr[T any](c *clause, expr string, v *T) {
	if v != nil {
		c.add(expr, *v)
	}
}

func setOpt[T any](c *clause, expr string, o entity.Optional[T]) {
	if o.Set {
		c.add(expr, o.Arg())
	}
}

// arrayOpt writes an array column; null becomes the empty array since the
// columns are NOT NULL.
func arrayOpt[T any](c *clause, expr string, o entity.Optional[[]T]) {
	if !o.Set {
		return
	}
	if o.Null || o.Value == nil {
		c.add(expr, []T{})
		return
	}
	c.add(expr, o.Value)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

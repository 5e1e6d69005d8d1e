package repository

import (
	"fmt"
	"math"
	"strings"

	"coopcycle-service/internal/models"

	"github.com/jackc/pgx/v5"
)

type Sort struct {
	Property string
	Desc     bool
}

// Pageable selects one page of a listing. Size 0 means unpaged.
type Pageable struct {
	Page int
	Size int
	Sort []Sort
}

// Validate rejects negative values and pages whose offset does not fit in
// an int.
func (p *Pageable) Validate() error {
	if p == nil {
		return nil
	}
	if p.Page < 0 || p.Size < 0 {
		return fmt.Errorf("%w: page %d size %d", ErrInvalidInput, p.Page, p.Size)
	}
	if p.Size > 0 && p.Page > math.MaxInt/p.Size {
		return fmt.Errorf("%w: page %d is out of range", ErrInvalidInput, p.Page)
	}
	return nil
}

func (p *Pageable) Offset() int {
	if p == nil || p.Size <= 0 {
		return 0
	}
	return p.Page * p.Size
}

// Filter restricts a listing to the rows whose foreign key for Association
// equals ID, or is NULL when IsNull is set. The zero Filter matches all rows.
type Filter struct {
	Association string
	ID          models.ID
	IsNull      bool
}

func (f Filter) IsZero() bool {
	return f.Association == ""
}

// Condition is a WHERE clause tree. Leaves compare Field with Value, inner
// nodes join Nested with Logic ("AND" or "OR").
type Condition struct {
	Field    string
	Operator string
	Value    any
	Logic    string
	Nested   []Condition
}

func Eq(field string, value any) Condition {
	return Condition{Field: field, Operator: "=", Value: value}
}

func IsNull(field string) Condition {
	return Condition{Field: field, Operator: "IS NULL"}
}

func And(conditions ...Condition) Condition {
	return Condition{Logic: "AND", Nested: conditions}
}

// toSQL renders the condition with $n placeholders numbered after the
// arguments already collected.
func (c Condition) toSQL(args *[]any) string {
	if c.Field != "" {
		switch c.Operator {
		case "IS NULL", "IS NOT NULL":
			return c.Field + " " + c.Operator
		}
		*args = append(*args, c.Value)
		return fmt.Sprintf("%s %s $%d", c.Field, c.Operator, len(*args))
	}

	var clauses []string
	for _, nested := range c.Nested {
		if sql := nested.toSQL(args); sql != "" {
			clauses = append(clauses, "("+sql+")")
		}
	}
	logic := strings.ToUpper(c.Logic)
	if logic == "" {
		logic = "AND"
	}
	return strings.Join(clauses, " "+logic+" ")
}

func quote(parts ...string) string {
	return pgx.Identifier(parts).Sanitize()
}

// rootColumn qualifies a root column for use in a condition.
func rootColumn(name string) string {
	return quote(RootAlias, name)
}

// selectList returns the aliased select list: root columns first, then the
// columns of each association in relation order.
func (t *Table[E]) selectList() []string {
	var cols []string
	for _, c := range t.Columns {
		cols = append(cols, quote(RootAlias, c.Name)+" AS "+quote(RootAlias+"_"+c.Name))
	}
	for _, r := range t.Relations {
		for _, name := range r.target.columnNames() {
			cols = append(cols, quote(r.Alias, name)+" AS "+quote(r.Alias+"_"+name))
		}
	}
	return cols
}

func (t *Table[E]) fromClause() string {
	var b strings.Builder
	b.WriteString(quote(t.Name) + " " + quote(RootAlias))
	for _, r := range t.Relations {
		fmt.Fprintf(&b, " LEFT OUTER JOIN %s %s ON %s = %s",
			quote(r.target.tableName()), quote(r.Alias),
			quote(RootAlias, r.FK), quote(r.Alias, "id"))
	}
	return b.String()
}

func (t *Table[E]) filterCondition(f Filter) (*Condition, error) {
	if f.IsZero() {
		return nil, nil
	}
	rel, ok := t.relation(f.Association)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no association %q", ErrInvalidInput, t.Name, f.Association)
	}
	if f.IsNull {
		c := IsNull(rootColumn(rel.FK))
		return &c, nil
	}
	c := Eq(rootColumn(rel.FK), int64(f.ID))
	return &c, nil
}

func (t *Table[E]) orderBy(page *Pageable) (string, error) {
	if page == nil {
		return "", nil
	}

	var terms []string
	for _, s := range page.Sort {
		c, ok := t.column(s.Property)
		if !ok {
			return "", fmt.Errorf("%w: cannot sort %s by %q", ErrInvalidInput, t.Name, s.Property)
		}
		dir := "ASC"
		if s.Desc {
			dir = "DESC"
		}
		terms = append(terms, rootColumn(c.Name)+" "+dir)
	}
	if len(terms) == 0 && page.Size > 0 {
		terms = append(terms, rootColumn("id")+" ASC")
	}
	if len(terms) == 0 {
		return "", nil
	}
	return "ORDER BY " + strings.Join(terms, ", "), nil
}

// SelectSQL builds the joined SELECT for t. Sorting and paging follow the
// WHERE clause; sort properties must name a root column.
func (t *Table[E]) SelectSQL(page *Pageable, where *Condition) (string, []any, error) {
	if err := page.Validate(); err != nil {
		return "", nil, err
	}

	var args []any

	parts := []string{
		"SELECT " + strings.Join(t.selectList(), ", "),
		"FROM " + t.fromClause(),
	}

	if where != nil {
		if clause := where.toSQL(&args); clause != "" {
			parts = append(parts, "WHERE "+clause)
		}
	}

	order, err := t.orderBy(page)
	if err != nil {
		return "", nil, err
	}
	if order != "" {
		parts = append(parts, order)
	}

	if page != nil && page.Size > 0 {
		parts = append(parts, fmt.Sprintf("LIMIT %d OFFSET %d", page.Size, page.Offset()))
	}

	return strings.Join(parts, " "), args, nil
}

func (t *Table[E]) countSQL(where *Condition) (string, []any) {
	var args []any
	sql := "SELECT COUNT(*) FROM " + quote(t.Name) + " " + quote(RootAlias)
	if where != nil {
		if clause := where.toSQL(&args); clause != "" {
			sql += " WHERE " + clause
		}
	}
	return sql, args
}

// writable returns the non-id columns in declaration order.
func (t *Table[E]) writable() []Column[E] {
	return t.Columns[1:]
}

func (t *Table[E]) insertSQL(e *E) (string, []any) {
	cols := t.writable()
	names := make([]string, len(cols))
	marks := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		names[i] = quote(c.Name)
		marks[i] = fmt.Sprintf("$%d", i+1)
		args[i] = c.get(e)
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		quote(t.Name), strings.Join(names, ", "), strings.Join(marks, ", "), quote("id"))
	return sql, args
}

func (t *Table[E]) updateSQL(e *E) (string, []any) {
	cols := t.writable()
	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		args = append(args, c.get(e))
		sets[i] = fmt.Sprintf("%s = $%d", quote(c.Name), len(args))
	}
	args = append(args, int64(t.ID(e)))
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		quote(t.Name), strings.Join(sets, ", "), quote("id"), len(args))
	return sql, args
}

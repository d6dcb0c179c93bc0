package database

import "strings"

// Condition is a SQL filter applied to the note table. Values are always
// bound as parameters; the zero value matches every row.
type Condition struct {
	Clause string
	Args   []any
}

// Where builds a condition from a raw clause using ? placeholders
func Where(clause string, args ...any) Condition {
	return Condition{Clause: clause, Args: args}
}

// TitleContains matches notes whose title contains term
func TitleContains(term string) Condition {
	return Where(`title LIKE ? ESCAPE '\'`, likePattern(term))
}

// TextContains matches notes whose title or content contains term
func TextContains(term string) Condition {
	pattern := likePattern(term)
	return Where(`title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\'`, pattern, pattern)
}

// DateBetween matches notes dated within [from, to]
func DateBetween(from, to int64) Condition {
	return Where("date >= ? AND date <= ?", from, to)
}

// And joins conditions, skipping empty ones
func And(conds ...Condition) Condition {
	var clauses []string
	var args []any
	for _, c := range conds {
		if c.IsEmpty() {
			continue
		}
		clauses = append(clauses, "("+c.Clause+")")
		args = append(args, c.Args...)
	}
	return Condition{Clause: strings.Join(clauses, " AND "), Args: args}
}

func (c Condition) IsEmpty() bool {
	return strings.TrimSpace(c.Clause) == ""
}

// where renders the WHERE fragment and a fresh copy of its arguments
func (c Condition) where() (string, []any) {
	if c.IsEmpty() {
		return "", nil
	}
	args := make([]any, len(c.Args))
	copy(args, c.Args)
	return " WHERE (" + c.Clause + ")", args
}

func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return "%" + escaped + "%"
}

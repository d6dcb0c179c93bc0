package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCondition_Where(t *testing.T) {
	assert.True(t, Condition{}.IsEmpty())
	assert.True(t, Where("   ").IsEmpty())

	clause, args := Condition{}.where()
	assert.Empty(t, clause)
	assert.Nil(t, args)

	clause, args = DateBetween(1, 2).where()
	assert.Equal(t, " WHERE (date >= ? AND date <= ?)", clause)
	assert.Equal(t, []any{int64(1), int64(2)}, args)
}

func TestCondition_WhereCopiesArgs(t *testing.T) {
	cond := Where("_id = ?", 7)
	_, args := cond.where()
	args[0] = 8
	assert.Equal(t, []any{7}, cond.Args)
}

func TestAnd(t *testing.T) {
	cond := And(TitleContains("a_b"), Condition{}, DateBetween(0, 9))

	assert.Equal(t, `(title LIKE ? ESCAPE '\') AND (date >= ? AND date <= ?)`, cond.Clause)
	assert.Equal(t, []any{`%a\_b%`, int64(0), int64(9)}, cond.Args)
	assert.True(t, And().IsEmpty())
}

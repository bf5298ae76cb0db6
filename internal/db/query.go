package db

import (
	"encoding/json"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// findPage counts the rows matched by q and loads one page of them.
// q must not carry preloads; pass them as scopes so the count stays a plain COUNT(*).
func findPage[T any](q *gorm.DB, page Page, order string, scopes ...func(*gorm.DB) *gorm.DB) ([]*T, int64, error) {
	q = q.Model(new(T)).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, MapGormError(err)
	}

	items := make([]*T, 0, page.Limit)
	if total == 0 {
		return items, 0, nil
	}

	result := q.Scopes(scopes...).Order(order).Scopes(page.Scope()).Find(&items)
	if result.Error != nil {
		return nil, 0, MapGormError(result.Error)
	}
	return items, total, nil
}

// preload returns a scope that eager-loads an association
func preload(name string, args ...interface{}) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Preload(name, args...)
	}
}

// likeEscape is the escape character of every LIKE pattern built here.
// Backslash is avoided because MySQL and SQLite quote it differently.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// likeCond returns a "column LIKE ?" condition using likeEscape
func likeCond(column string) string {
	return column + " LIKE ? ESCAPE '" + likeEscape + "'"
}

// escapeLike makes s match literally inside a LIKE pattern
func escapeLike(s string) string {
	return likeReplacer.Replace(s)
}

// contains builds a LIKE pattern matching s anywhere in the column
func contains(s string) string {
	return "%" + escapeLike(strings.TrimSpace(s)) + "%"
}

// prefix builds a LIKE pattern matching columns starting with s
func prefix(s string) string {
	return escapeLike(strings.TrimSpace(s)) + "%"
}

// tagPattern builds a LIKE pattern matching one whole element of the JSON
// encoded tags column
func tagPattern(tag string) string {
	encoded, err := json.Marshal(strings.ToLower(strings.TrimSpace(tag)))
	if err != nil {
		return "%" + escapeLike(`"`+tag+`"`) + "%"
	}
	return "%" + escapeLike(string(encoded)) + "%"
}

// startsWithFirst orders rows whose column starts with q ahead of the others,
// breaking ties with the then expression
func startsWithFirst(column, q, then string) clause.OrderBy {
	return clause.OrderBy{Expression: clause.Expr{
		SQL:                "CASE WHEN " + likeCond(column) + " THEN 0 ELSE 1 END, " + then,
		Vars:               []interface{}{prefix(q)},
		WithoutParentheses: true,
	}}
}

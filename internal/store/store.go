// Package store gives typed access to the clover collections backing the
// service. Timestamps are owned here: Create and Update stamp documents
// themselves.
package store

import (
	"time"

	cl "github.com/ostafen/clover/v2"
	"github.com/ostafen/clover/v2/document"
)

const (
	ColAccounts  = "accounts"
	ColUsers     = "users"
	ColPosts     = "posts"
	ColSessions  = "sessions"
	ColSaves     = "saves"
	ColBrands    = "brands"
	ColEquipment = "equipment"
)

var collections = []string{
	ColAccounts, ColUsers, ColPosts, ColSessions, ColSaves, ColBrands, ColEquipment,
}

// Open opens the database at dir and creates any missing collections.
func Open(dir string) (*cl.DB, error) {
	db, err := cl.Open(dir)
	if err != nil {
		return nil, err
	}

	for _, col := range collections {
		has, err := db.HasCollection(col)
		if err != nil {
			db.Close()
			return nil, err
		}
		if !has {
			if err := db.CreateCollection(col); err != nil {
				db.Close()
				return nil, err
			}
		}
	}

	return db, nil
}

// Documents round-trip through msgpack, so values read back with laxer
// types than they were written with; the helpers below absorb that.

func docString(doc *document.Document, field string) string {
	v, _ := doc.Get(field).(string)
	return v
}

func docInt64(doc *document.Document, field string) int64 {
	switch v := doc.Get(field).(type) {
	case int64:
		return v
	case uint64:
		return int64(v)
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

func docTime(doc *document.Document, field string) time.Time {
	v, _ := doc.Get(field).(time.Time)
	return v
}

func docStrings(doc *document.Document, field string) []string {
	switch v := doc.Get(field).(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{}
}

package repository

import (
	"gorm.io/gorm"

	"registrar_backend/internals/features/registrar/model"
)

// Spec is a criteria pair: Query narrows a gorm statement, Match evaluates the same
// condition against an in-memory record. Both halves must agree.
type Spec[T any] struct {
	Query func(db *gorm.DB) *gorm.DB
	Match func(rec *T) bool
}

func (s Spec[T]) apply(db *gorm.DB) *gorm.DB {
	if s.Query == nil {
		return db
	}
	return s.Query(db)
}

func (s Spec[T]) matches(rec *T) bool {
	return s.Match == nil || s.Match(rec)
}

func All[T any]() Spec[T] { return Spec[T]{} }

// Where builds an entity-specific criterion.
func Where[T any](query string, arg any, match func(rec *T) bool) Spec[T] {
	return Spec[T]{
		Query: func(db *gorm.DB) *gorm.DB { return db.Where(query, arg) },
		Match: match,
	}
}

func ByUUID[T any](uuid string) Spec[T] {
	return Where("uuid = ?", uuid, func(rec *T) bool {
		return model.IdentityOf(rec).UUID == uuid
	})
}

func ByID[T any](id uint64) Spec[T] {
	return Where("id = ?", id, func(rec *T) bool {
		return model.IdentityOf(rec).ID == id
	})
}

func ExcludingUUID[T any](uuid string) Spec[T] {
	if uuid == "" {
		return All[T]()
	}
	return Where("uuid <> ?", uuid, func(rec *T) bool {
		return model.IdentityOf(rec).UUID != uuid
	})
}

// ByTestRun restricts to one shard. An empty run uuid selects production records only.
func ByTestRun[T any](runUUID string) Spec[T] {
	var zero T
	col := model.TestableOf(&zero).TestRunColumn()
	if runUUID == "" {
		return Spec[T]{
			Query: func(db *gorm.DB) *gorm.DB { return db.Where(col + " IS NULL") },
			Match: func(rec *T) bool { return model.TestableOf(rec).TestRunRef() == "" },
		}
	}
	return Where(col+" = ?", runUUID, func(rec *T) bool {
		return model.TestableOf(rec).TestRunRef() == runUUID
	})
}

func And[T any](specs ...Spec[T]) Spec[T] {
	return Spec[T]{
		Query: func(db *gorm.DB) *gorm.DB {
			for _, s := range specs {
				db = s.apply(db)
			}
			return db
		},
		Match: func(rec *T) bool {
			for _, s := range specs {
				if !s.matches(rec) {
					return false
				}
			}
			return true
		},
	}
}

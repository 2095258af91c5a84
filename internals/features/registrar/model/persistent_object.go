// file: internals/features/registrar/model/persistent_object.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnyVersion disables the optimistic version check on update and delete.
const AnyVersion int64 = -1

// Persistent is satisfied by every stored record through the embedded PersistentObject.
type Persistent interface {
	Identity() *PersistentObject
	TableName() string
}

// Testable records can be tagged with a test run and kept out of production queries.
type Testable interface {
	Persistent
	TestRunRef() string
	TestRunColumn() string
	SetTestRun(uuid string)
}

// PersistentObject is the identity block shared by all entities.
// ID never leaves the server; clients only ever see UUID.
type PersistentObject struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement;column:id" json:"-"`
	Version      int64     `gorm:"not null;column:version" json:"version"`
	UUID         string    `gorm:"type:varchar(36);uniqueIndex;not null;column:uuid" json:"uuid"`
	CreationDate time.Time `gorm:"type:timestamptz;not null;column:creation_date" json:"creationDate"`

	// computed link, filled by the REST layer
	Self string `gorm:"-" json:"self,omitempty"`
}

func (p *PersistentObject) Identity() *PersistentObject { return p }

// Prepare assigns uuid and creation date when they are still unset.
func (p *PersistentObject) Prepare(now time.Time) {
	if strings.TrimSpace(p.UUID) == "" {
		p.UUID = uuid.NewString()
	}
	if p.CreationDate.IsZero() {
		p.CreationDate = now.UTC()
	}
}

func (p *PersistentObject) BeforeCreate(tx *gorm.DB) error {
	p.Prepare(time.Now())
	return nil
}

// Equal compares by uuid only.
func (p *PersistentObject) Equal(other *PersistentObject) bool {
	if p == nil || other == nil {
		return false
	}
	return p.UUID != "" && p.UUID == other.UUID
}

// TestablePersistentObject adds the optional test-run tag.
type TestablePersistentObject struct {
	PersistentObject
	TestRunUUID *string `gorm:"type:varchar(36);index;column:test_run_uuid" json:"testRunUuid,omitempty"`
}

func (t *TestablePersistentObject) IsTestData() bool { return t.TestRunRef() != "" }

func (t *TestablePersistentObject) TestRunRef() string {
	if t.TestRunUUID == nil {
		return ""
	}
	return *t.TestRunUUID
}

func (t *TestablePersistentObject) TestRunColumn() string { return "test_run_uuid" }

func (t *TestablePersistentObject) SetTestRun(u string) {
	if u == "" {
		t.TestRunUUID = nil
		return
	}
	t.TestRunUUID = &u
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// file: internals/features/registrar/model/test_run_model.go
package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// ObjectRef points at one record tagged with a test run.
type ObjectRef struct {
	Noun string `json:"noun"`
	UUID string `json:"uuid"`
}

// TestRun marks a session of integration-test data. A run is its own shard:
// filtering test runs "by test run" matches on the run's own uuid.
type TestRun struct {
	PersistentObject

	Name     string    `gorm:"type:varchar(80);not null;column:name" json:"name"`
	TestDate time.Time `gorm:"type:timestamptz;not null;column:test_date" json:"testDate"`
	User     string    `gorm:"type:varchar(80);column:user_name" json:"user,omitempty"`

	// populated from the registered shards on lookup, never stored
	Objects []ObjectRef `gorm:"-" json:"objects,omitempty"`
}

func (TestRun) TableName() string { return "test_runs" }

func (t *TestRun) TestRunRef() string    { return t.UUID }
func (t *TestRun) TestRunColumn() string { return "uuid" }
func (t *TestRun) SetTestRun(string)     {}

func (t *TestRun) BeforeSave(tx *gorm.DB) error {
	t.Name = strings.TrimSpace(t.Name)
	t.User = strings.TrimSpace(t.User)
	if t.TestDate.IsZero() {
		t.TestDate = time.Now().UTC()
	}
	return nil
}

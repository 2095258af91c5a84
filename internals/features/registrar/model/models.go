package model

// Compile-time contract assertions.
var (
	_ Testable = (*Course)(nil)
	_ Testable = (*Student)(nil)
	_ Testable = (*Instructor)(nil)
	_ Testable = (*Term)(nil)
	_ Testable = (*Classroom)(nil)
	_ Testable = (*Section)(nil)
	_ Testable = (*TestRun)(nil)
)

// All lists every table for migrations.
func All() []any {
	return []any{
		&TestRun{},
		&Course{},
		&Student{},
		&Instructor{},
		&Term{},
		&Classroom{},
		&Section{},
	}
}

// IdentityOf returns the identity block of any entity pointer.
func IdentityOf[T any](rec *T) *PersistentObject {
	return any(rec).(Persistent).Identity()
}

// TestableOf returns the test-run view of any entity pointer.
func TestableOf[T any](rec *T) Testable {
	return any(rec).(Testable)
}

// TestRunUUIDOf yields the shard key for a run; nil means production scope.
func TestRunUUIDOf(run *TestRun) string {
	if run == nil {
		return ""
	}
	return run.UUID
}

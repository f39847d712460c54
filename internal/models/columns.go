package models

import "fmt"

// Column names shared by every store backend. gorm column tags and bson tags
// use the same names so a repository.Filter works against either.
const (
	ColumnID       = "id"
	ColumnUsername = "username"
	ColumnPassword = "password"
	ColumnEmail    = "email"
	ColumnName     = "name"
	ColumnCreator  = "creator"
	ColumnShared   = "shared"
	ColumnList     = "list"
	ColumnDone     = "done"
	ColumnTaskID   = "task_id"
)

// ErrColumnNotPatchable is returned by SetColumn for columns that are
// immutable or unknown.
type ErrColumnNotPatchable struct {
	Table  string
	Column string
}

func (e *ErrColumnNotPatchable) Error() string {
	return fmt.Sprintf("column %q of %s cannot be patched", e.Column, e.Table)
}

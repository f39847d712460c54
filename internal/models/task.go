package models

import "fmt"

// Task belongs to a List through ListID. TaskID is the caller supplied
// identifier used by clients to update a task; ID is assigned by the store.
type Task struct {
	ID     string `gorm:"type:varchar(36);primaryKey;column:id" json:"id" bson:"_id"`
	Name   string `gorm:"type:varchar(255);not null;column:name" json:"name" bson:"name"`
	ListID string `gorm:"type:varchar(36);not null;index;column:list" json:"list" bson:"list"`
	Done   bool   `gorm:"not null;column:done" json:"done" bson:"done"`
	TaskID string `gorm:"type:varchar(255);uniqueIndex;not null;column:task_id" json:"taskId" bson:"task_id"`
}

func (t *Task) GetID() string   { return t.ID }
func (t *Task) SetID(id string) { t.ID = id }

func (t *Task) Column(name string) (any, bool) {
	switch name {
	case ColumnID:
		return t.ID, true
	case ColumnName:
		return t.Name, true
	case ColumnList:
		return t.ListID, true
	case ColumnDone:
		return t.Done, true
	case ColumnTaskID:
		return t.TaskID, true
	}
	return nil, false
}

// SetColumn applies a single patched column. Only done is mutable.
func (t *Task) SetColumn(name string, value any) error {
	if name != ColumnDone {
		return &ErrColumnNotPatchable{Table: "tasks", Column: name}
	}
	done, ok := value.(bool)
	if !ok {
		return fmt.Errorf("column %q of tasks expects bool, got %T", name, value)
	}
	t.Done = done
	return nil
}

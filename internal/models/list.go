package models

// List is a named collection of tasks. Creator holds the owning user's
// username; it is not checked against the users table.
type List struct {
	ID      string `gorm:"type:varchar(36);primaryKey;column:id" json:"id" bson:"_id"`
	Name    string `gorm:"type:varchar(255);not null;index:idx_lists_name_creator;column:name" json:"name" bson:"name"`
	Creator string `gorm:"type:varchar(255);not null;index:idx_lists_name_creator;column:creator" json:"creator" bson:"creator"`
	Shared  bool   `gorm:"not null;column:shared" json:"shared" bson:"shared"`
}

func (l *List) GetID() string   { return l.ID }
func (l *List) SetID(id string) { l.ID = id }

func (l *List) Column(name string) (any, bool) {
	switch name {
	case ColumnID:
		return l.ID, true
	case ColumnName:
		return l.Name, true
	case ColumnCreator:
		return l.Creator, true
	case ColumnShared:
		return l.Shared, true
	}
	return nil, false
}

// SetColumn always fails: lists are never updated.
func (l *List) SetColumn(name string, _ any) error {
	return &ErrColumnNotPatchable{Table: "lists", Column: name}
}

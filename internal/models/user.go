package models

type User struct {
	ID       string `gorm:"type:varchar(36);primaryKey;column:id" json:"id" bson:"_id"`
	Username string `gorm:"type:varchar(255);uniqueIndex;not null;column:username" json:"username" bson:"username"`
	Password string `gorm:"type:varchar(255);not null;column:password" json:"-" bson:"password"`
	Email    string `gorm:"type:varchar(255);not null;column:email" json:"email" bson:"email"`
}

func (u *User) GetID() string   { return u.ID }
func (u *User) SetID(id string) { u.ID = id }

// Column returns the value stored under a column name.
func (u *User) Column(name string) (any, bool) {
	switch name {
	case ColumnID:
		return u.ID, true
	case ColumnUsername:
		return u.Username, true
	case ColumnPassword:
		return u.Password, true
	case ColumnEmail:
		return u.Email, true
	}
	return nil, false
}

// SetColumn always fails: users are never updated.
func (u *User) SetColumn(name string, _ any) error {
	return &ErrColumnNotPatchable{Table: "users", Column: name}
}

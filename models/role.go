package models

// role values recognized by the authorization layer
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Role is a named authorization level that can be assigned to users
type Role struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Value       string  `json:"value" gorm:"uniqueIndex;not null"`
	Description string  `json:"description,omitempty"`
	CreatedAt   int64   `json:"created_at"`
	UpdatedAt   int64   `json:"updated_at"`
	Users       []*User `json:"-" gorm:"many2many:user_roles;"`
}

// UserRole is the join table for the many-to-many relationship between users and roles.
type UserRole struct {
	UserID    uint  `json:"user_id" gorm:"primaryKey"`
	RoleID    uint  `json:"role_id" gorm:"primaryKey"`
	User      User  `json:"-" gorm:"foreignKey:UserID"`
	Role      Role  `json:"-" gorm:"foreignKey:RoleID"`
	CreatedAt int64 `json:"created_at"`
}

// TableName overrides the table name for UserRole to be `user_roles`
func (UserRole) TableName() string {
	return "user_roles"
}

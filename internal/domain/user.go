package domain

// Role is the authorization level of a user
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered author or reader
type User struct {
	BaseModel
	Username     string  `gorm:"type:varchar(50);not null;uniqueIndex:uq_users_username" json:"username"`
	Email        string  `gorm:"type:varchar(100);not null;uniqueIndex:uq_users_email" json:"email"`
	PasswordHash string  `gorm:"column:password;type:varchar(255);not null" json:"-"`
	FullName     string  `gorm:"type:varchar(100)" json:"fullName"`
	Avatar       *string `gorm:"type:varchar(255)" json:"avatar,omitempty"`
	Role         Role    `gorm:"type:varchar(10);not null;default:'user'" json:"role"`
	Bio          *string `gorm:"type:text" json:"bio,omitempty"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DisplayName is the public name shown next to content
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

package entity

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

type User struct {
	Base
	Username         string   `db:"username"`
	Email            string   `db:"email"`
	FirstName        *string  `db:"first_name"`
	LastName         *string  `db:"last_name"`
	Bio              *string  `db:"bio"`
	Role             UserRole `db:"role"`
	ConfirmationCode string   `db:"confirmation_code"`
}

// IsModeratorOrHigher reports whether the user may moderate other
// authors' content.
func (u *User) IsModeratorOrHigher() bool {
	return u.Role == RoleModerator || u.Role == RoleAdmin
}

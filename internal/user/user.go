package user

// Table is the name of the users table.
const Table = "users"

// Header is the users table header row.
var Header = []string{"email", "role", "createdAt"}

const (
	colEmail = iota
	colRole
	colCreatedAt
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// IsAdmin reports whether r grants elevated rights.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Record is one row of the users table.
type Record struct {
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"createdAt"`
}

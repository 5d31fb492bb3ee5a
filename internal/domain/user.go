package domain

type UserRole string

const (
	UserRoleOwner  UserRole = "OWNER"
	UserRoleStaff  UserRole = "STAFF"
	UserRoleBranch UserRole = "BRANCH"
)

type User struct {
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phone_number"`
	Name        string   `json:"name"`
	Role        UserRole `json:"role"`
	BranchName  string   `json:"branch_name,omitempty"`
	CreatedOn   string   `json:"created_on"`
	UpdatedOn   string   `json:"updated_on"`
}

// Delegated reports whether the user submits on behalf of the account owner.
// Delegated submitters bill with the owner's tax profile.
func (u *User) Delegated() bool {
	return u.Role == UserRoleStaff || u.Role == UserRoleBranch
}

package models

import (
	"strings"
	"time"
)

// Role discriminates what an employee can see and do
type Role string

// Roles in login precedence order. When the same name and password exist
// under more than one role, the earliest role in this list wins.
const (
	RoleServiceExecutive Role = "service-executive"
	RoleIT               Role = "it"
	RoleSalesManager     Role = "sales-manager"
	RoleAdmin            Role = "admin"
	RoleAccount          Role = "account"
	RoleHR               Role = "hr"
	RoleExecutive        Role = "executive"
	RoleTelecaller       Role = "telecaller"
	RoleDesigner         Role = "designer"
	RoleService          Role = "service"
	RolePrinting         Role = "printing"
	RoleVendor           Role = "vendor"
)

// Roles lists every role in login precedence order
var Roles = []Role{
	RoleServiceExecutive,
	RoleIT,
	RoleSalesManager,
	RoleAdmin,
	RoleAccount,
	RoleHR,
	RoleExecutive,
	RoleTelecaller,
	RoleDesigner,
	RoleService,
	RolePrinting,
	RoleVendor,
}

// roleRoutes maps a role to the dashboard the client should open after login
var roleRoutes = map[Role]string{
	RoleServiceExecutive: "/service-executive-dashboard",
	RoleIT:               "/it-dashboard",
	RoleSalesManager:     "/sales-manager-dashboard",
	RoleAdmin:            "/admin-dashboard",
	RoleAccount:          "/account-dashboard",
	RoleHR:               "/hr-dashboard",
	RoleExecutive:        "/executive-dashboard",
	RoleTelecaller:       "/telecaller-dashboard",
	RoleDesigner:         "/designer-dashboard",
	RoleService:          "/service-dashboard",
	RolePrinting:         "/printing-dashboard",
	RoleVendor:           "/vendor-dashboard",
}

// ParseRole normalizes a role name ("Sales Manager", "sales_manager")
func ParseRole(s string) (Role, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "-", "_", "-").Replace(normalized)
	role := Role(normalized)
	if _, ok := roleRoutes[role]; !ok {
		return "", false
	}
	return role, true
}

// Precedence returns the login priority of the role, lower wins.
// Unknown roles sort last.
func (r Role) Precedence() int {
	for i, role := range Roles {
		if role == r {
			return i
		}
	}
	return len(Roles)
}

// Route returns the dashboard path for the role
func (r Role) Route() string {
	return roleRoutes[r]
}

// Employee is any staff member; the role replaces the per-role collections
type Employee struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"not null;index" json:"name"`
	Role         Role       `gorm:"not null;index" json:"role"`
	Phone        string     `json:"phone"`
	Email        string     `json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Active       bool       `gorm:"not null" json:"active"`
	JoinedAt     *time.Time `json:"joined_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName specifies the table name for the Employee model
func (Employee) TableName() string {
	return "employees"
}

// Package perm defines role and permission tokens and the permission oracle
// that decides whether a role set satisfies a widget's requirements.
package perm

// Role tokens as issued in the "roles" custom claim.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleAnalyst  = "analyst"
	RoleEmployee = "employee"
	RoleViewer   = "viewer"
)

// Permission tokens required by catalog widgets.
const (
	ViewDashboard    = "VIEW_DASHBOARD"
	ViewTransactions = "VIEW_TRANSACTIONS"
	ViewAccounts     = "VIEW_ACCOUNTS"
	ViewReports      = "VIEW_REPORTS"
	ExportReports    = "EXPORT_REPORTS"
	ManageUsers      = "MANAGE_USERS"
	ViewAuditLog     = "VIEW_AUDIT_LOG"
)

// Oracle answers whether a role set grants a permission. Implementations must be pure.
type Oracle interface {
	HasPermission(roles []string, permission string) bool
}

// Grants is an Oracle backed by a static role to permission table.
type Grants map[string][]string

// DefaultGrants is the built-in role table.
var DefaultGrants = Grants{
	RoleAdmin: {
		ViewDashboard, ViewTransactions, ViewAccounts, ViewReports,
		ExportReports, ManageUsers, ViewAuditLog,
	},
	RoleManager:  {ViewDashboard, ViewTransactions, ViewAccounts, ViewReports, ExportReports},
	RoleAnalyst:  {ViewDashboard, ViewTransactions, ViewReports},
	RoleEmployee: {ViewDashboard, ViewTransactions},
	RoleViewer:   {ViewDashboard},
}

func (g Grants) HasPermission(roles []string, permission string) bool {
	for _, r := range roles {
		for _, p := range g[r] {
			if p == permission {
				return true
			}
		}
	}
	return false
}

// HasAll reports whether roles satisfy every permission. An empty list is unrestricted.
func HasAll(o Oracle, roles []string, permissions []string) bool {
	for _, p := range permissions {
		if !o.HasPermission(roles, p) {
			return false
		}
	}
	return true
}

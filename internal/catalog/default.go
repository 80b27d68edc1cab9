package catalog

import (
	"github.com/GregMSThompson/dashboard-backend/internal/models"
	"github.com/GregMSThompson/dashboard-backend/internal/perm"
	"github.com/GregMSThompson/dashboard-backend/pkg/helpers"
)

// Widget ids
const (
	WidgetWelcome                = "welcome"
	WidgetAccountBalances        = "accountBalances"
	WidgetTopSpenders            = "topSpenders"
	WidgetSpendingTrend          = "spendingTrend"
	WidgetPeriodComparison       = "periodComparison"
	WidgetLargestTransactions    = "largestTransactions"
	WidgetRecurringSubscriptions = "recurringSubscriptions"
	WidgetBankConnections        = "bankConnections"
	WidgetNetWorth               = "netWorth"
	WidgetMonthlyReport          = "monthlyReport"
	WidgetExportCenter           = "exportCenter"
	WidgetTeamSpending           = "teamSpending"
	WidgetUserManagement         = "userManagement"
	WidgetAuditLog               = "auditLog"
)

var defaultCatalog = MustNew([]models.WidgetDescriptor{
	{
		ID:                  WidgetWelcome,
		Category:            models.CategoryOverview,
		Title:               "Welcome",
		DefaultOrder:        helpers.Ptr(0.0),
		RequiredPermissions: []string{perm.ViewDashboard},
		IsCore:              true,
	},
	{
		ID:                  WidgetAccountBalances,
		Category:            models.CategoryOverview,
		Title:               "Account balances",
		DefaultOrder:        helpers.Ptr(1.0),
		RequiredPermissions: []string{perm.ViewAccounts},
	},
	{
		ID:                  WidgetTopSpenders,
		Category:            models.CategoryOverview,
		Title:               "Top spenders",
		DefaultOrder:        helpers.Ptr(2.0),
		RequiredPermissions: []string{perm.ViewTransactions},
	},
	{
		ID:                  WidgetRecurringSubscriptions,
		Category:            models.CategoryOverview,
		Title:               "Subscriptions",
		DefaultVisibility:   helpers.Ptr(false),
		RequiredPermissions: []string{perm.ViewTransactions},
		RoleBasedVisibility: map[string]models.RoleOverride{
			perm.RoleEmployee: {Visible: helpers.Ptr(true), Order: helpers.Ptr(3.0)},
		},
	},
	{
		ID:                  WidgetSpendingTrend,
		Category:            models.CategorySpending,
		Title:               "Spending trend",
		DefaultOrder:        helpers.Ptr(1.0),
		RequiredPermissions: []string{perm.ViewTransactions},
	},
	{
		ID:                  WidgetPeriodComparison,
		Category:            models.CategorySpending,
		Title:               "Period comparison",
		DefaultOrder:        helpers.Ptr(2.0),
		RequiredPermissions: []string{perm.ViewTransactions},
		RoleBasedVisibility: map[string]models.RoleOverride{
			perm.RoleAnalyst: {Order: helpers.Ptr(0.0)},
		},
	},
	{
		ID:                  WidgetLargestTransactions,
		Category:            models.CategorySpending,
		Title:               "Largest transactions",
		RequiredPermissions: []string{perm.ViewTransactions},
	},
	{
		ID:                  WidgetBankConnections,
		Category:            models.CategoryAccounts,
		Title:               "Bank connections",
		DefaultOrder:        helpers.Ptr(1.0),
		RequiredPermissions: []string{perm.ViewAccounts},
	},
	{
		ID:                  WidgetNetWorth,
		Category:            models.CategoryAccounts,
		Title:               "Net worth",
		DefaultVisibility:   helpers.Ptr(false),
		RequiredPermissions: []string{perm.ViewAccounts},
		RoleBasedVisibility: map[string]models.RoleOverride{
			perm.RoleManager: {Visible: helpers.Ptr(true)},
			perm.RoleAdmin:   {Visible: helpers.Ptr(true), Order: helpers.Ptr(0.0)},
		},
	},
	{
		ID:                  WidgetMonthlyReport,
		Category:            models.CategoryReports,
		Title:               "Monthly report",
		DefaultOrder:        helpers.Ptr(1.0),
		RequiredPermissions: []string{perm.ViewReports},
	},
	{
		ID:                  WidgetExportCenter,
		Category:            models.CategoryReports,
		Title:               "Export center",
		DefaultOrder:        helpers.Ptr(2.0),
		RequiredPermissions: []string{perm.ViewReports, perm.ExportReports},
	},
	{
		ID:                  WidgetTeamSpending,
		Category:            models.CategoryReports,
		Title:               "Team spending",
		DefaultVisibility:   helpers.Ptr(false),
		RequiredPermissions: []string{perm.ViewReports},
		RoleBasedVisibility: map[string]models.RoleOverride{
			perm.RoleManager: {Visible: helpers.Ptr(true), Order: helpers.Ptr(0.0)},
		},
	},
	{
		ID:                  WidgetUserManagement,
		Category:            models.CategoryAdmin,
		Title:               "User management",
		DefaultOrder:        helpers.Ptr(1.0),
		RequiredPermissions: []string{perm.ManageUsers},
	},
	{
		ID:                  WidgetAuditLog,
		Category:            models.CategoryAdmin,
		Title:               "Audit log",
		DefaultOrder:        helpers.Ptr(2.0),
		RequiredPermissions: []string{perm.ViewAuditLog},
	},
})

// Default returns the built-in dashboard catalog.
func Default() *Catalog {
	return defaultCatalog
}

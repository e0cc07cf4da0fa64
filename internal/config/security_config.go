// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No session needed
	SecurityAdmin                       // Established admin session required
)

// EndpointSecurityConfig maps admin API route names to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Auth
	"auth.login":  SecurityPublic,
	"auth.logout": SecurityAdmin,
	"session.get": SecurityAdmin,

	// Dashboard
	"dashboard.stats":    SecurityAdmin,
	"dashboard.activity": SecurityAdmin,
	"dashboard.refresh":  SecurityAdmin,

	// Notifications
	"notifications.list":     SecurityAdmin,
	"notifications.read":     SecurityAdmin,
	"notifications.read_all": SecurityAdmin,

	// Users
	"users.list":     SecurityAdmin,
	"users.approve":  SecurityAdmin,
	"users.reject":   SecurityAdmin,
	"users.suspend":  SecurityAdmin,
	"users.activate": SecurityAdmin,
	"users.delete":   SecurityAdmin,

	// Jobs
	"jobs.list":          SecurityAdmin,
	"jobs.approve":       SecurityAdmin,
	"jobs.toggle_status": SecurityAdmin,
	"jobs.delete":        SecurityAdmin,

	// Bookings
	"bookings.list":    SecurityAdmin,
	"bookings.approve": SecurityAdmin,
	"bookings.reject":  SecurityAdmin,
	"bookings.payment": SecurityAdmin,
	"bookings.delete":  SecurityAdmin,

	// Audit
	"audit.list": SecurityAdmin,
}

// RouteSecurity returns the level for a route name. Unknown routes require a session.
func RouteSecurity(name string) SecurityLevel {
	if level, ok := EndpointSecurityConfig[name]; ok {
		return level
	}
	return SecurityAdmin
}

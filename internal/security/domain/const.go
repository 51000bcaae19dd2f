package domain

// Action tags form a fixed vocabulary so that aggregate reports stay stable
// across releases.
const (
	// Gate decisions
	ActionUnauthAccess  = "unauth_access"
	ActionClientsHit    = "clients_hit"
	ActionForbiddenRole = "forbidden_role"

	// Client registry operations
	ActionListClients         = "list_clients"
	ActionDetailClient        = "detail_client"
	ActionCreateClient        = "create_client"
	ActionCreateClientInvalid = "create_client_invalid"
	ActionUpdateClient        = "update_client"
	ActionUpdateClientInvalid = "update_client_invalid"
	ActionDeleteClient        = "delete_client"
)

// Roles recognized by the authorization gates. Role comparison is
// case-sensitive and only RoleAdmin grants access to client records.
const (
	RoleAdmin   = "Admin"
	RoleExterno = "Externo"
)

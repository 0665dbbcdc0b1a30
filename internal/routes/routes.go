package routes

const (
	Health = "/api/health"

	AuthRegister = "/api/auth/register"
	AuthLogin    = "/api/auth/login"
	AuthRefresh  = "/api/auth/refresh"

	Properties            = "/api/properties"
	Property              = "/api/properties/{propertyID}"
	PropertyAssignTenant  = "/api/properties/{propertyID}/assign-tenant"
	PropertyReleaseTenant = "/api/properties/{propertyID}/unassign"
	RoomAssignTenant      = "/api/rooms/{roomID}/assign-tenant"

	Bills         = "/api/bills"
	BillsTenant   = "/api/bills/tenant"
	BillsLandlord = "/api/bills/landlord"
	BillMarkPaid  = "/api/bills/{billID}/pay"

	Payments         = "/api/payments"
	PaymentsTenant   = "/api/payments/tenant/{tenantID}"
	PaymentsInitiate = "/api/payments/initiate"
	PaymentsCallback = "/api/payments/callback"

	Leases       = "/api/leases"
	LeasesTenant = "/api/leases/tenant/{tenantID}"
	Lease        = "/api/leases/{leaseID}"

	Complaints = "/api/complaints"
	Complaint  = "/api/complaints/{complaintID}"

	MessagesGroup         = "/api/messages/group"
	MessagesDirect        = "/api/messages/direct"
	MessagesGroupHistory  = "/api/messages/group/{propertyID}"
	MessagesDirectHistory = "/api/messages/direct/{userID}"
	Websocket             = "/api/ws"

	Tenants     = "/api/tenants"
	Tenant      = "/api/tenants/{tenantID}"
	TenantLease = "/api/tenants/{tenantID}/lease"

	UsersMe      = "/api/users/me"
	UsersTenants = "/api/users/tenants"
	User         = "/api/users/{userID}"
)

package consts

// Actor roles known to the service. Role gating happens here, server-side;
// whatever buttons the client renders is irrelevant to authorization.
const (
	RoleAdministrator   = "administrador"
	RoleCreditCommittee = "comite_credito"
	RoleOperator        = "operador"
)

// decisionCapableRoles are the roles allowed to approve or reject a loan.
var decisionCapableRoles = map[string]struct{}{
	RoleAdministrator:   {},
	RoleCreditCommittee: {},
}

// CanDecideLoan reports whether the role carries the approve/reject capability.
func CanDecideLoan(role string) bool {
	_, ok := decisionCapableRoles[role]
	return ok
}

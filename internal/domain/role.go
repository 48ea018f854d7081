package domain

// RoleName enumerates capability tags embedded in final tokens.
type RoleName string

const (
	RoleAdministrador RoleName = "Administrador"
	RoleEmpleado      RoleName = "Empleado"
	RoleCliente       RoleName = "Cliente"
)

// Role is a row of the `roles` relation used to resolve staff role names.
type Role struct {
	ID     int
	Nombre RoleName
}

// SubjectType differentiates staff vs client tokens.
type SubjectType string

const (
	SubjectTypeStaff  SubjectType = "STAFF"
	SubjectTypeClient SubjectType = "CLIENT"
)

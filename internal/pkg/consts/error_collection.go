package consts

// User-facing domain error messages. Kept in Spanish because they are
// surfaced verbatim by the association's client applications.
const (
	MsgMotiveTooShort        = "El motivo es obligatorio y debe tener al menos 8 caracteres"
	MsgRoleNotAllowed        = "El rol no tiene permiso para aprobar o rechazar préstamos"
	MsgLoanNotFound          = "Préstamo no encontrado"
	MsgLoanAlreadyApproved   = "El préstamo ya está aprobado"
	MsgLoanAlreadyRejected   = "El préstamo ya está rechazado"
	MsgLoanNotPending        = "El préstamo no está pendiente de decisión"
	MsgLoanNotApproved       = "El préstamo no está aprobado"
	MsgInvalidStatus         = "Estado de préstamo inválido"
	MsgAmountOutOfRange      = "El monto debe ser mayor a cero y no superar el máximo del tipo de préstamo"
	MsgInvalidTerm           = "El plazo debe ser mayor a cero"
	MsgLoanTypeNotFound      = "Tipo de préstamo no encontrado"
	MsgLoanTypeInactive      = "El tipo de préstamo está inactivo"
	MsgLoanTypeAlreadyOff    = "El tipo de préstamo ya está inactivo"
	MsgLoanTypeInvalidFields = "Código, nombre, tasa de interés y monto máximo son obligatorios"
	MsgLoanTypeDuplicateCode = "Ya existe un tipo de préstamo con ese código"
	MsgMethodNotFound        = "Forma de cobro no encontrada"
	MsgMethodEmptyFields     = "Código y nombre de la forma de cobro son obligatorios"
	MsgMethodDuplicateCode   = "Código de forma de cobro duplicado"
	MsgMethodInactive        = "La forma de cobro está inactiva"
	MsgBatchEntryTouched     = "La línea ya fue editada y no puede quitarse del lote"
	MsgInstallmentNotFound   = "Cuota no encontrada"
	MsgInstallmentCollected  = "La cuota ya fue cobrada"
	MsgAssociateNotFound     = "Asociado no encontrado"
	MsgScheduleFailed        = "No se pudo generar el plan de cuotas"
	MsgUnexpected            = "Error inesperado del servidor"
	MsgConnectivity          = "No se pudo contactar al servicio remoto"
)

// Error codes attached to DomainError for machine consumption.
const (
	CodeValidation    = "MUTUAL_VALIDATION_ERROR"
	CodeAuthorization = "MUTUAL_AUTHORIZATION_ERROR"
	CodeConflict      = "MUTUAL_CONFLICT_ERROR"
	CodeNotFound      = "MUTUAL_NOT_FOUND"
	CodeServer        = "MUTUAL_INTERNAL_ERROR"
	CodeConnectivity  = "MUTUAL_CONNECTIVITY_ERROR"
)

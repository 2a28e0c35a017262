package consts

// LoanStatus is the lifecycle state of a loan. Values are the Spanish
// labels used across the association's systems and stored verbatim.
type LoanStatus string

const (
	LoanStatusPendiente  LoanStatus = "Pendiente"
	LoanStatusAprobado   LoanStatus = "Aprobado"
	LoanStatusRechazado  LoanStatus = "Rechazado"
	LoanStatusVigente    LoanStatus = "Vigente"
	LoanStatusFinalizado LoanStatus = "Finalizado"
)

// IsTerminal reports whether no further lifecycle transition is allowed.
func (s LoanStatus) IsTerminal() bool {
	return s == LoanStatusRechazado || s == LoanStatusFinalizado
}

// IsValid reports whether s is one of the known lifecycle states.
func (s LoanStatus) IsValid() bool {
	switch s {
	case LoanStatusPendiente, LoanStatusAprobado, LoanStatusRechazado,
		LoanStatusVigente, LoanStatusFinalizado:
		return true
	}
	return false
}

// InstallmentStatus is the reporting classification of a single installment.
type InstallmentStatus string

const (
	InstallmentStatusPagada    InstallmentStatus = "Pagada"
	InstallmentStatusVencida   InstallmentStatus = "Vencida"
	InstallmentStatusVenceHoy  InstallmentStatus = "Vence hoy"
	InstallmentStatusPendiente InstallmentStatus = "Pendiente"
)

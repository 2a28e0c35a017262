package consts

// MongoDB collection names.
const (
	LoansCollection             = "Loans"
	InstallmentsCollection      = "Installments"
	LoanTypesCollection         = "LoanTypes"
	CollectionMethodsCollection = "CollectionMethods"
	ApprovalDecisionsCollection = "ApprovalDecisions"
)

// Redis catalog cache keys.
const (
	LoanTypeCatalogKey         = "loan_types:catalog"
	CollectionMethodCatalogKey = "collection_methods:catalog"
)

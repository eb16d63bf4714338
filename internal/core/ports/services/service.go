package services

// ServiceContainer holds the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Ledger LedgerSvcFacade
	Query  QuerySvcFacade
	Users  UserDirectorySvc
}

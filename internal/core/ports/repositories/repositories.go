package repositories

// RepositoryProvider groups the concrete repositories handed to the service
// container. Both store implementations (pgsql and in-memory) produce one.
type RepositoryProvider struct {
	AccountRepo AccountRepositoryFacade
	UserRepo    UserRepositoryFacade
}

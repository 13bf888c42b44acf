package interfaces

// Session is the database connection session boundary.
type Session interface {
	Begin() error
	Close() error
	Commit() error
	Rollback() error
}

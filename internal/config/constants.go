package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the faculty records database
	DefaultDatabasePath = "./faculty.db"

	// DefaultTasksDatabasePath is the default path for the background task queue database
	DefaultTasksDatabasePath = "./faculty-tasks.db"
)

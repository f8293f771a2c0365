package config

const (
	// DefaultPort matches the port the library UI has always been served on.
	DefaultPort = 8501

	// DefaultEnvFile is the optional dotenv file read before the environment.
	DefaultEnvFile = ".env"
)

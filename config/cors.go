package config

// CORS defines the CORS middleware configuration
type CORS struct {
	// The list of allowed request origins
	AllowedOrigins []string `toml:"allowed_origins"`

	// The list of allowed request methods
	AllowedMethods []string `toml:"allowed_methods"`

	// The list of allowed request headers
	AllowedHeaders []string `toml:"allowed_headers"`
}

// DefaultCORSConfig returns the default CORS configuration
func DefaultCORSConfig() *CORS {
	return &CORS{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}
}

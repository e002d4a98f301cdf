// Package env holds the shared ENV variable naming
package env

const (
	// Prefix is the common prefix of all service ENV variables
	Prefix = "USDREPORT_"

	// DBURLSuffix is the Postgres connection string variable suffix
	DBURLSuffix = "DB_URL"
)

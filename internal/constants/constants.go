package constants

const (
	// APIName is used for environment variable overrides (FOLIO_*).
	APIName = "FOLIO"

	DefaultConfigPath1 = "/etc/folio"
	DefaultConfigPath2 = "$HOME/.folio"
)

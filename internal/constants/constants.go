package constants

const (
	AppName            = "datefeatures"
	Version            = "v0.1.0"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/datefeatures/config.yaml"
	DefaultDBPath      = "~/.config/datefeatures/features.db"

	// DateFormat is the ISO date layout accepted on the command line and used in all output (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// EnvDatabase overrides the export target when --db is not given
	EnvDatabase = "DATEFEATURES_DB"

	// Norwegian labour rules: Monday through Friday are working days
	FirstWorkday = 1 // time.Monday
	LastWorkday  = 5 // time.Friday
)

func init() {
	if FirstWorkday > LastWorkday {
		panic("FirstWorkday must not come after LastWorkday")
	}
}

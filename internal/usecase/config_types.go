package usecase

// ConfigFile describes TOML configuration structure.
type ConfigFile struct {
	MySQL         MySQLConfig         `toml:"mysql"`
	Backup        BackupConfig        `toml:"backup"`
	Notifications NotificationsConfig `toml:"notifications"`
	Logging       LoggingConfig       `toml:"logging"`
	Rotation      RotationConfig      `toml:"rotation"`
}

// MySQLConfig holds database paths.
type MySQLConfig struct {
	DataDir string `toml:"data_dir"`
}

// BackupConfig holds backup-related settings.
type BackupConfig struct {
	Root      string `toml:"root"`
	ToolPath  string `toml:"tool_path"`
	MinFreeGB int    `toml:"min_free_gb"`
}

// NotificationsConfig holds email notification settings.
type NotificationsConfig struct {
	Enabled    bool   `toml:"enabled"`
	To         string `toml:"to"`
	From       string `toml:"from"`
	SMTPServer string `toml:"smtp_server"`
	SMTPPort   int    `toml:"smtp_port"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Dir   string `toml:"dir"`
	Level string `toml:"level"`
}

// RotationConfig holds the retention policy settings.
type RotationConfig struct {
	// WeekStartsOn is the weekday a retention week begins on, 0 (Sunday)
	// through 6 (Saturday).
	WeekStartsOn int `toml:"week_starts_on"`
	// YearlyAnchorDay is the day of year (1-366) yearly retention targets.
	YearlyAnchorDay int `toml:"yearly_anchor_day"`
	WeeklyKeep      int `toml:"weekly_keep"`
	MonthlyKeep     int `toml:"monthly_keep"`
	YearlyKeep      int `toml:"yearly_keep"`
}

// DefaultConfigFile returns default TOML configuration.
func DefaultConfigFile() ConfigFile {
	return ConfigFile{
		MySQL: MySQLConfig{
			DataDir: "/var/lib/mysql",
		},
		Backup: BackupConfig{
			Root:      "",
			ToolPath:  "xtrabackup",
			MinFreeGB: 0,
		},
		Notifications: NotificationsConfig{
			Enabled:  false,
			SMTPPort: 25,
		},
		Logging: LoggingConfig{
			Dir:   "/var/log/clusterback",
			Level: "info",
		},
		Rotation: RotationConfig{
			WeekStartsOn:    1,
			YearlyAnchorDay: 1,
			WeeklyKeep:      4,
			MonthlyKeep:     6,
			YearlyKeep:      2,
		},
	}
}

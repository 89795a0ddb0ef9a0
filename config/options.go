package config

const (
	defaultLogFile           = "perpus-admin.log"
	defaultLogLevel          = "info"
	defaultLogFileMaxSize    = 20
	defaultLogFileMaxBackups = 3
	defaultLogFileMaxAge     = 28
	defaultLogCompress       = false
	defaultPort              = 8090
	defaultHost              = "0.0.0.0"
	defaultData              = "/var/opt/perpus-admin"
	defaultAPIBaseURL        = "http://45.64.100.26:88/perpus-api/public/api"
	defaultSessionCookie     = "perpus_session"
	defaultVersion           = "0.1.0"
)

// Viper unmarshals through mapstructure, so the field tags are mapstructure
// tags rather than json ones.
type Options struct {
	// LogFile is the file to write logs to
	LogFile string `mapstructure:"log_file"`
	// LogLevel is the level of logging to show
	LogLevel string `mapstructure:"log_level"`
	// LogFileMaxSize is the maximum size of the log file before it is rotated
	LogFileMaxSize int `mapstructure:"log_file_max_size"`
	// LogFileMaxBackups is the maximum number of log files to keep
	LogFileMaxBackups int `mapstructure:"log_file_max_backups"`
	// LogFileMaxAge is the maximum number of days to keep a log file
	LogFileMaxAge int `mapstructure:"log_file_max_age"`
	// LogCompress is whether or not to compress the log files
	LogCompress bool `mapstructure:"log_compress"`
	// DSN is the path of the session database (sqlite)
	DSN string `mapstructure:"dsn_uri"`
	// Port is the port to listen on
	Port int `mapstructure:"port"`
	// Host is the host to listen on
	Host string `mapstructure:"host"`
	// Data is the directory to store data
	Data string `mapstructure:"data"`
	// APIBaseURL is the base URL of the remote perpus API
	APIBaseURL string `mapstructure:"api_base_url"`
	// SessionCookie is the name of the browser session cookie
	SessionCookie string `mapstructure:"session_cookie"`
	// Version is the version of the application
	Version string `mapstructure:"version"`
}

func GetDefaultOptions() *Options {
	Opts = &Options{
		LogFile:           defaultLogFile,
		LogLevel:          defaultLogLevel,
		LogFileMaxSize:    defaultLogFileMaxSize,
		LogFileMaxBackups: defaultLogFileMaxBackups,
		LogFileMaxAge:     defaultLogFileMaxAge,
		LogCompress:       defaultLogCompress,
		Port:              defaultPort,
		Host:              defaultHost,
		Data:              defaultData,
		APIBaseURL:        defaultAPIBaseURL,
		SessionCookie:     defaultSessionCookie,
		Version:           defaultVersion,
	}
	return Opts
}

package types

// AppConfig represents the application configuration loaded from config file
type AppConfig struct {
	WebPort          int    `yaml:"webPort"`
	DeviceHost       string `yaml:"deviceHost"`
	DevicePort       int    `yaml:"devicePort"`
	CommandTimeoutMs int    `yaml:"commandTimeoutMs"`
	GraceDelayMs     int    `yaml:"graceDelayMs"`
	ScanTimeoutMs    int    `yaml:"scanTimeoutMs"`
	FlickrAPIKey     string `yaml:"flickrApiKey"`
	FlickrUserID     string `yaml:"flickrUserId,omitempty"`
	DefaultTag       string `yaml:"defaultTag,omitempty"`
	PresetsPath      string `yaml:"presetsPath,omitempty"`
}

// Config holds runtime overrides from CLI flags
type Config struct {
	Log               string
	UseConfigPath     string
	UseWebPort        int
	UseDeviceHost     string
	UseDevicePort     int
	UseFlickrKey      string
	UseCommandTimeout int // milliseconds
	UseGraceDelay     int // milliseconds
}

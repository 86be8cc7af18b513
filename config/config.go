package config

type APIConfig struct {
	BaseURL        string `yaml:"baseURL" mapstructure:"baseURL"`
	TimeoutSeconds int    `yaml:"timeout" mapstructure:"timeout"` // 单位: 秒
}

func (APIConfig) Key() string {
	return "api"
}

type SessionConfig struct {
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
}

func (SessionConfig) Key() string {
	return "session"
}

type LogConfig struct {
	Debug bool `yaml:"debug" mapstructure:"debug"`
}

func (LogConfig) Key() string {
	return "log"
}

type UIConfig struct {
	PageSize int `yaml:"pageSize" mapstructure:"pageSize"`
}

func (UIConfig) Key() string {
	return "ui"
}

type RefresherConfig struct {
	CronExpr       string `yaml:"cronExpr" mapstructure:"cronExpr"`
	Enabled        bool   `yaml:"enabled" mapstructure:"enabled"`
	TimeoutSeconds int    `yaml:"timeout" mapstructure:"timeout"` // 单位: 秒
}

func (RefresherConfig) Key() string {
	return "refresher"
}

type ExporterConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

func (ExporterConfig) Key() string {
	return "exporter"
}

type MockServerConfig struct {
	Addr      string `yaml:"addr" mapstructure:"addr"`
	JWTSecret string `yaml:"jwtSecret" mapstructure:"jwtSecret"`
}

func (MockServerConfig) Key() string {
	return "mockServer"
}

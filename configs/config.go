package configs

import (
	"log"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config struct
type Config struct {
	App       `mapstructure:"app"`
	Bot       `mapstructure:"bot"`
	Storage   `mapstructure:"storage"`
	RateLimit `mapstructure:"ratelimit"`
	Session   `mapstructure:"session"`
	Audit     `mapstructure:"audit"`
}

// App struct
type App struct {
	Debug bool   `mapstructure:"debug"`
	Env   string `mapstructure:"env"`
	Port  string `mapstructure:"port"`
}

// Bot struct
type Bot struct {
	APIBaseURL string  `mapstructure:"api_base_url"`
	AdminIDs   []int64 `mapstructure:"admin_ids"`
}

// Storage struct
type Storage struct {
	DataDir    string `mapstructure:"data_dir"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// RateLimit struct - windows in seconds, zero means application defaults
type RateLimit struct {
	Window       int `mapstructure:"window"`
	MaxMessages  int `mapstructure:"max_messages"`
	ReviewWindow int `mapstructure:"review_window"`
	ReviewMax    int `mapstructure:"review_max"`
}

// Session struct - idle timeout in seconds, zero means application default
type Session struct {
	Timeout int `mapstructure:"timeout"`
}

// Audit struct
type Audit struct {
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

var config Config

// InitViper func
func InitViper(path, env string) {
	getConfig(path, env)
}

// GetViper func
func GetViper() *Config {
	return &config
}

func getConfig(path, env string) {
	viper.SetConfigName("config")
	viper.AddConfigPath(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}
	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		log.Println("Config file has changed: ", e.Name)
	})
	err = viper.Unmarshal(&config)
	if err != nil {
		log.Fatalln(err)
	}
}

package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/womat/debug"
	"gopkg.in/yaml.v2"
)

// Config defines the struct of global config and the struct of the
// configuration file.
type Config struct {
	// Driver selects the gpio backend (gpiomem|gpiod).
	Driver string `yaml:"driver"`
	// Bus holds the line numbers of the source controller bus.
	Bus BusConfig `yaml:"bus"`
	// Ports holds the line numbers of the downstream pass-through
	// ports; one entry per port, may be empty.
	Ports []PortConfig `yaml:"ports"`
	// IntervalInt is the debounce window in milliseconds: the time
	// one full vote of three raw samples may take. The nominal bus
	// rate is roughly a 60Hz window.
	IntervalInt int           `yaml:"interval"`
	Interval    time.Duration `yaml:"-"`

	Flag      FlagConfig      `yaml:"-"`
	Log       LogConfig       `yaml:"log"`
	Webserver WebserverConfig `yaml:"webserver"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
}

// BusConfig defines the BCM line numbers of one controller bus.
type BusConfig struct {
	Latch int `yaml:"latch"`
	Clock int `yaml:"clock"`
	Data  int `yaml:"data"`
}

// PortConfig defines the BCM line numbers of one downstream port.
type PortConfig struct {
	Latch int `yaml:"latch"`
	Clock int `yaml:"clock"`
	Data  int `yaml:"data"`
}

// FlagConfig defines the configured flags (parameters).
type FlagConfig struct {
	LogLevel   string
	ConfigFile string
}

// WebserverConfig defines the struct of the webserver and webservice
// configuration and configuration file.
type WebserverConfig struct {
	URL         string          `yaml:"url"`
	Webservices map[string]bool `yaml:"webservices"`
}

// MQTTConfig defines the struct of the mqtt client configuration and
// configuration file.
type MQTTConfig struct {
	Connection  string        `yaml:"connection"`
	Interval    time.Duration `yaml:"-"`
	IntervalInt int           `yaml:"interval"`
	Topic       string        `yaml:"topic"`
}

// LogConfig defines the struct of the log configuration and
// configuration file.
type LogConfig struct {
	File       io.WriteCloser `yaml:"-"`
	Flag       int            `yaml:"-"`
	FlagString string         `yaml:"flag"`
	FileString string         `yaml:"file"`
}

func NewConfig() *Config {
	return &Config{
		Driver:      "gpiomem",
		Bus:         BusConfig{Latch: 23, Clock: 24, Data: 25},
		Ports:       []PortConfig{},
		IntervalInt: 15,
		Flag:        FlagConfig{},
		Log: LogConfig{
			FileString: "stderr",
			FlagString: "standard",
		},
		Webserver: WebserverConfig{
			URL: "http://0.0.0.0:4000",
			Webservices: map[string]bool{
				"version": true,
				"health":  true,
				"state":   true,
			},
		},
		MQTT: MQTTConfig{
			Connection:  "tcp://127.0.0.1:1883",
			IntervalInt: 5,
			Topic:       "snesio/state",
		},
	}
}

func (c *Config) LoadConfig() error {
	if err := c.readConfigFile(); err != nil {
		return fmt.Errorf("error reading config file %q: %w", c.Flag.ConfigFile, err)
	}

	if c.Flag.LogLevel != "" {
		c.Log.FlagString = c.Flag.LogLevel
	}
	if err := c.setLogConfig(); err != nil {
		return fmt.Errorf("unable to open log file %q: %w", c.Log.FileString, err)
	}

	c.MQTT.Interval = time.Duration(c.MQTT.IntervalInt) * time.Second
	c.Interval = time.Duration(c.IntervalInt) * time.Millisecond

	return nil
}

func (c *Config) readConfigFile() error {
	file, err := os.Open(c.Flag.ConfigFile)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	decoder := yaml.NewDecoder(file)
	if err = decoder.Decode(c); err != nil {
		return err
	}

	return nil
}

func (c *Config) setLogConfig() (err error) {
	switch c.Log.FlagString {
	case "trace", "full":
		c.Log.Flag = debug.Full
	case "debug":
		c.Log.Flag = debug.Warning | debug.Info | debug.Error | debug.Fatal | debug.Debug
	case "standard":
		c.Log.Flag = debug.Standard
	}

	switch c.Log.FileString {
	case "stderr":
		c.Log.File = os.Stderr
	case "stdout":
		c.Log.File = os.Stdout
	default:
		if c.Log.File, err = os.OpenFile(c.Log.FileString, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666); err != nil {
			return
		}
	}

	return
}

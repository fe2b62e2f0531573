// Package config loads the demo harness's configuration, following the
// teacher repository's internal/config/config.go: a cleanenv-backed,
// once-initialized singleton read from a YAML file.
package config

import (
	"log"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the tunables a smart charging demo station needs. Unlike
// the teacher's Config (which configures a WebSocket listener), this one
// configures the device model defaults the core validates against, since
// the core owns no transport of its own.
type Config struct {
	IsDebug *bool `yaml:"is_debug"`

	DeviceModel struct {
		ChargingScheduleChargingRateUnit string `yaml:"charging_schedule_charging_rate_unit" env-default:"A,W"`
		SupplyPhases                     int    `yaml:"supply_phases" env-default:"3"`
		ACPhaseSwitchingSupported        bool   `yaml:"ac_phase_switching_supported" env-default:"false"`
		TxStartPoint                     string `yaml:"tx_start_point" env-default:"PowerPathClosed"`
	} `yaml:"device_model"`
}

var instance *Config
var once sync.Once

// GetConfig reads config.yml once and returns the shared Config instance.
func GetConfig() (*Config, error) {
	var err error
	once.Do(func() {
		log.Println("reading config")
		instance = &Config{}
		if err = cleanenv.ReadConfig("config.yml", instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			log.Println(desc)
			log.Println(err)
			instance = nil
		}
	})
	return instance, err
}

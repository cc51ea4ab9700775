package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cperrin88/aptbridge/pkg/errors"
)

// SetValue sets a configuration value by its yaml key.
func (c *Config) SetValue(key, value string) error {
	switch key {
	case "store_dir":
		c.Settings.StoreDir = value
	case "dpkg_status":
		c.Settings.DpkgStatus = value
	case "lists_dir":
		c.Settings.ListsDir = value
	case "architecture":
		c.Settings.Architecture = value
	case "apt_get":
		c.Settings.AptGet = value
	case "dpkg_query":
		c.Settings.DpkgQuery = value
	case "poll_interval":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %s", key, value)
		}
		c.Settings.PollInterval = d
	case "filter_limit":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %s", key, value)
		}
		c.Settings.FilterLimit = n
	case "log_level":
		c.Settings.LogLevel = value
	default:
		return fmt.Errorf("%w: %s", errors.ErrUnknownConfigKey, key)
	}
	return c.Validate()
}

// GetValue returns the value for a yaml key as a string.
func (c *Config) GetValue(key string) (string, error) {
	value, ok := c.ToMap()[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", errors.ErrUnknownConfigKey, key)
	}
	return value, nil
}

// ToMap flattens the settings into yaml-key/value pairs for display.
func (c *Config) ToMap() map[string]string {
	result := make(map[string]string)

	settingsValue := reflect.ValueOf(c.Settings)
	settingsType := settingsValue.Type()

	for i := 0; i < settingsValue.NumField(); i++ {
		field := settingsType.Field(i)
		yamlTag := field.Tag.Get("yaml")
		if yamlTag == "" || yamlTag == "-" {
			continue
		}

		yamlKey := strings.Split(yamlTag, ",")[0]
		fieldValue := settingsValue.Field(i)

		switch v := fieldValue.Interface().(type) {
		case time.Duration:
			result[yamlKey] = v.String()
		case string:
			result[yamlKey] = v
		case int:
			result[yamlKey] = strconv.Itoa(v)
		default:
			result[yamlKey] = fmt.Sprintf("%v", v)
		}
	}

	return result
}

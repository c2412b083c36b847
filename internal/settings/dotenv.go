package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// LoadDotEnv exports the variables of a .env file into the process
// environment. Variables that are already set keep their value. A missing
// file is not an error. It returns the names it exported.
func LoadDotEnv(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	// viper lower-cases keys; environment names are upper case.
	var exported []string
	for _, key := range v.AllKeys() {
		name := strings.ToUpper(key)
		if _, ok := os.LookupEnv(name); ok {
			continue
		}
		if err := os.Setenv(name, v.GetString(key)); err != nil {
			return exported, fmt.Errorf("set %s: %w", name, err)
		}
		exported = append(exported, name)
	}
	return exported, nil
}

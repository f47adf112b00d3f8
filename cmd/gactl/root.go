package main

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvReplacer replaces `-` to `_`.
// This is used to map flag like `--node-url` to environment variables like `GACTL_NODE_URL`.
var envReplacer = strings.NewReplacer("-", "_")

func init() {
	viper.SetEnvPrefix("GACTL")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(envReplacer)
}

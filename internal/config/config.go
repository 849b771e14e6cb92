package config

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"yt2mp4/internal/dirs"
)

// Viper keys for the root persistent flags. Env lookups use the same keys
// with the YT2MP4_ prefix, e.g. YT2MP4_FFMPEG_BINARY.
var flagKeys = map[string]string{
	"output":        "output",
	"verbose":       "verbose",
	"ytdlp_binary":  "ytdlp-binary",
	"ffmpeg_binary": "ffmpeg-binary",
	"jobs":          "jobs",
	"timeout":       "timeout",
}

// Init points viper at the config dir, the YT2MP4_* environment, and the
// root persistent flags. Best effort: a missing config file or unresolvable
// config dir never blocks startup.
func Init(root *cobra.Command) error {
	_ = dirs.EnsureAll()

	if cfgDir, err := dirs.ConfigDir(); err == nil {
		viper.AddConfigPath(cfgDir)
	}
	viper.SetConfigName("config") // config.{yaml|yml|json|toml}

	viper.SetEnvPrefix("YT2MP4")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	for key, flag := range flagKeys {
		_ = viper.BindPFlag(key, root.PersistentFlags().Lookup(flag))
	}

	_ = viper.ReadInConfig()
	return nil
}

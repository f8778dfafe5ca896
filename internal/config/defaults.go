package config

const (
	defaultMatchPercent     = 80
	defaultAskPercent       = 50
	defaultOutputPath       = "with_images.compendium"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogMaxSizeMB     = 32
	defaultLogMaxBackups    = 1
	defaultConfigPath       = "~/.config/compendia/config.toml"
	defaultProjectConfigRel = "compendia.toml"
)

// defaultExtensions are the image formats Encounter+ renders.
var defaultExtensions = []string{".png", ".jpg", ".jpeg"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Matching: Matching{
			MatchPercent: defaultMatchPercent,
			AskPercent:   defaultAskPercent,
			Extensions:   append([]string(nil), defaultExtensions...),
			Prompt:       true,
		},
		Images: Role{
			StripWords: []string{"image"},
		},
		Tokens: Role{
			StripWords: []string{"token"},
		},
		Output: Output{
			Path: defaultOutputPath,
		},
		Logging: Logging{
			Format:     defaultLogFormat,
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
		},
	}
}

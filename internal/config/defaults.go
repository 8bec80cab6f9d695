package config

const (
	defaultOutputDir   = "~/.local/share/framepipe/frames"
	defaultCatalogPath = "~/.local/share/framepipe/catalog.db"
	defaultImageFormat = "png"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Extract: Extract{
			OutputDir:   defaultOutputDir,
			ImageFormat: defaultImageFormat,
		},
		Catalog: Catalog{
			Enabled: true,
			Path:    defaultCatalogPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

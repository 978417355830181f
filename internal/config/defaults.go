package config

const (
	defaultOutputDir          = "./propmeta-out"
	defaultIndexPath          = "~/.cache/propmeta/packindex.db"
	defaultLogDir             = ""
	defaultNamespace          = "minecraft"
	defaultHomeDir            = "optifine"
	defaultEmissiveConfig     = "optifine/emissive.properties"
	defaultAnimationDir       = "optifine/anim/"
	defaultEmissiveSuffix     = "_e"
	defaultRootAnimationLimit = 256
	defaultOutputFormat       = "json"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"

	// PackDirsEnv overrides paths.pack_dirs when set.
	PackDirsEnv = "PROPMETA_PACK_DIRS"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			IndexPath: defaultIndexPath,
			LogDir:    defaultLogDir,
		},
		Resolve: Resolve{
			DefaultNamespace: defaultNamespace,
			HomeDir:          defaultHomeDir,
		},
		Schemas: Schemas{
			EmissiveConfig:        defaultEmissiveConfig,
			AnimationDir:          defaultAnimationDir,
			DefaultEmissiveSuffix: defaultEmissiveSuffix,
			RootAnimationLimit:    defaultRootAnimationLimit,
		},
		Output: Output{
			Format: defaultOutputFormat,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

package config

const (
	defaultOutputDir            = "~/.local/share/sceneforge/outputs"
	defaultUploadDir            = "~/.local/share/sceneforge/uploads"
	defaultLogDir               = "~/.local/share/sceneforge/logs"
	defaultAPIBind              = "127.0.0.1:8420"
	defaultManimBinary          = "manim"
	defaultFFmpegBinary         = "ffmpeg"
	defaultFFprobeBinary        = "ffprobe"
	defaultRenderQuality        = "ql"
	defaultEntryClass           = "GeneratedScene"
	defaultLLMBaseURL           = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel             = "anthropic/claude-3.5-sonnet"
	defaultLLMTimeoutSeconds    = 60
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultRenderProgressBudget = 80
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			UploadDir: defaultUploadDir,
			LogDir:    defaultLogDir,
			APIBind:   defaultAPIBind,
		},
		Engine: Engine{
			ManimBinary:   defaultManimBinary,
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
			Quality:       defaultRenderQuality,
			EntryClass:    defaultEntryClass,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Workflow: Workflow{
			RenderProgressBudget: defaultRenderProgressBudget,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

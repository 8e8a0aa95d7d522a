package config

// Transcription engine identifiers accepted by whisper.engine.
const (
	EngineWhisper = "whisper"
	EngineOpenAI  = "openai"
)

const (
	defaultInboxDir       = "~/audio/inbox"
	defaultProcessedDir   = "~/audio/processed"
	defaultTranscriptsDir = "~/audio/transcripts"
	defaultStagingDir     = "~/.local/share/scribe/staging"
	defaultLogDir         = "~/.local/share/scribe/logs"

	defaultWhisperEngine         = EngineWhisper
	defaultWhisperModel          = "small"
	defaultWhisperDevice         = "cpu"
	defaultWhisperTimeoutSeconds = 3600

	defaultOpenAIModel          = "whisper-1"
	defaultOpenAITimeoutSeconds = 600

	defaultLogFormat = "console"
	defaultLogLevel  = "info"

	defaultDeployOutputDir      = "~/.local/share/scribe/deploy"
	defaultWordPressPort        = 8000
	defaultWordPressImage       = "wordpress:latest"
	defaultMySQLImage           = "mysql:5.7"
	defaultDBName               = "wordpress"
	defaultDBUser               = "wordpress"
	defaultWhisperDeployImage   = "scribe-whisper:latest"
	defaultNotifyRequestTimeout = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InboxDir:       defaultInboxDir,
			ProcessedDir:   defaultProcessedDir,
			TranscriptsDir: defaultTranscriptsDir,
			StagingDir:     defaultStagingDir,
			LogDir:         defaultLogDir,
		},
		Whisper: Whisper{
			Engine:         defaultWhisperEngine,
			Model:          defaultWhisperModel,
			Device:         defaultWhisperDevice,
			TimeoutSeconds: defaultWhisperTimeoutSeconds,
		},
		OpenAI: OpenAI{
			Model:          defaultOpenAIModel,
			TimeoutSeconds: defaultOpenAITimeoutSeconds,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Transcription:  true,
			Organization:   true,
			Errors:         true,
		},
		Workflow: Workflow{
			QueuePollInterval:  5,
			InboxScanInterval:  10,
			ErrorRetryInterval: 10,
			HeartbeatInterval:  15,
			HeartbeatTimeout:   120,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Deploy: Deploy{
			OutputDir:      defaultDeployOutputDir,
			WordPressPort:  defaultWordPressPort,
			WordPressImage: defaultWordPressImage,
			MySQLImage:     defaultMySQLImage,
			DBName:         defaultDBName,
			DBUser:         defaultDBUser,
			WhisperImage:   defaultWhisperDeployImage,
		},
	}
}

package whisper

// Config captures runtime settings for whisper invocations.
type Config struct {
	// Model is the whisper model to load (e.g. "small", "medium").
	Model string
	// Device selects the compute device ("cpu" or "cuda").
	Device string
	// Binary overrides the whisper executable name.
	Binary string
}

// Whisper configuration constants.
const (
	DefaultModel = "small"
	OutputFormat = "all"
	CPUDevice    = "cpu"
	CUDADevice   = "cuda"
)

// DefaultBinary is the whisper CLI executable name.
const DefaultBinary = "whisper"

package config

// Archive failure policies.
const (
	ArchiveFailureInvalid = "invalid" // log, count the item invalid, keep going
	ArchiveFailureFatal   = "fatal"   // abort the run
)

// Progress styles for downloads.
const (
	ProgressPercent = "percent"
	ProgressBar     = "bar"
)

// DefaultUserAgent identifies the tool to download servers.
const DefaultUserAgent = "frcInstallTool-997"

// Config holds the tunables of a run. Everything has a default, so the
// configuration file is optional.
// - UserAgent: value of the User-Agent header sent with every download.
// - Git: git executable used for mirror clones.
// - Pip: command prefix for the package manager, e.g. [python3, -m, pip].
// - ArchiveFailure: what a corrupt archive does to the run ("invalid" or "fatal").
// - Progress: how download progress is drawn ("percent" or "bar").
type Config struct {
	UserAgent      string   `yaml:"user_agent" toml:"user_agent"`
	Git            string   `yaml:"git" toml:"git"`
	Pip            []string `yaml:"pip" toml:"pip"`
	ArchiveFailure string   `yaml:"archive_failure" toml:"archive_failure"`
	Progress       string   `yaml:"progress" toml:"progress"`
}

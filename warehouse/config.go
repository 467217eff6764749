package warehouse

import "time"

// Fallback values applied when the simulation reports degenerate metadata
// at startup. These are configuration, overridable per Config.
const (
	DefaultEpisodeLimit = 1000
	DefaultAgentCount   = 4
	DefaultObsShape     = 47
	DefaultTimeScale    = 20.0
	DefaultConnectWait  = 5 * time.Minute
)

// Config holds the construction parameters of a warehouse environment.
type Config struct {
	// EnvPath points at the simulation binary to launch. Empty means attach
	// to an already-running instance.
	EnvPath string
	// NoGraphics runs the simulation headless.
	NoGraphics bool
	// TimeScale is the simulation time-acceleration factor.
	TimeScale float64
	// WorkerID distinguishes parallel instances; it offsets the transport
	// port so instances do not collide.
	WorkerID int
	// EpisodeLimit is the step horizon after which an episode is truncated.
	EpisodeLimit int
	// DefaultAgents substitutes the agent count when the simulation reports
	// zero agents on the first tick.
	DefaultAgents int
	// DefaultObsShape substitutes the observation width when the behavior
	// declares no observation spec.
	DefaultObsShape int
	// ConnectTimeout bounds the wait for the simulation to become
	// reachable. Attaching to an externally-managed instance can
	// legitimately take minutes.
	ConnectTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.TimeScale == 0 {
		c.TimeScale = DefaultTimeScale
	}
	if c.EpisodeLimit == 0 {
		c.EpisodeLimit = DefaultEpisodeLimit
	}
	if c.DefaultAgents == 0 {
		c.DefaultAgents = DefaultAgentCount
	}
	if c.DefaultObsShape == 0 {
		c.DefaultObsShape = DefaultObsShape
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = DefaultConnectWait
	}
	return c
}

package core

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState represents the current state of a play session.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Ticks     int     // Simulated ticks since the session (re)started
	Deaths    int     // Respawns since the session (re)started
	ElapsedMs float64 // Simulated milliseconds since the session (re)started
	Finished  bool    // Whether the victory checkpoint was reached
	Paused    bool    // Whether ticking is suspended by the player
	Editing   bool    // Whether the session is in edit mode
}

// StepResult is returned by Game.Step() after each platform tick.
type StepResult struct {
	State GameState
}

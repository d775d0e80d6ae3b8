package engine

// Config holds engine policy options.
type Config struct {
	// Seed for the combat RNG. A seed of 0 means a time-based seed will be
	// chosen at engine construction.
	Seed int64

	// ExitOnPlayerDeath controls the encounter's loss branch. When true the
	// encounter terminates when the combat proxy dies, applying LossPenalty
	// to the overworld player. When false the only exit condition is the
	// enemy's death.
	ExitOnPlayerDeath bool

	// LossPenalty is the flat damage applied to the overworld player's
	// persistent health when an encounter is lost.
	LossPenalty int

	// EMPMultiplier scales the damage roll when the EMP device is deployed
	// against a robotic enemy.
	EMPMultiplier int

	// MonotoneObjectives, when set, rejects quest objective updates that
	// would lower an objective's progress.
	MonotoneObjectives bool
}

// DefaultConfig returns the standard engine policy.
func DefaultConfig() Config {
	return Config{
		ExitOnPlayerDeath: true,
		LossPenalty:       50,
		EMPMultiplier:     2,
	}
}

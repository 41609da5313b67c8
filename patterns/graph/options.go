package graph

// Option is a functional option for configuring Graph behavior.
// Options are applied during Builder construction via NewBuilder.
type Option func(*graphConfig)

// WithMaxSteps sets the maximum number of node executions per run.
// When the limit is reached, Execute fails with [ErrMaxStepsExceeded].
// Values of zero or less keep [DefaultMaxSteps].
//
// Example:
//
//	builder := graph.NewBuilder(graph.WithMaxSteps(50))
func WithMaxSteps(maxSteps int) Option {
	return func(config *graphConfig) {
		if maxSteps > 0 {
			config.maxSteps = maxSteps
		}
	}
}

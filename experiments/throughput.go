package experiments

import (
	"dots/experiments/metrics"
)

// RunThroughputExperiment plays every thread count against itself, so both
// sides search positions of similar size and the iterations per second of
// each thread count can be compared.
func RunThroughputExperiment(settings Settings) ([]metrics.AgentSummary, error) {
	configs := []metrics.AgentConfig{}
	matchUps := [][]metrics.AgentConfig{}
	for i, threads := range settings.Threads {
		config := settings.agentConfig(i+1, threads)
		configs = append(configs, config)
		matchUps = append(matchUps, []metrics.AgentConfig{config, config})
	}
	return runExperiment("throughput", settings, configs, matchUps)
}

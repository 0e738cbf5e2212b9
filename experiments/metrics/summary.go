package metrics

import (
	"gonum.org/v1/gonum/stat"
)

// AgentSummary aggregates the games and moves of one agent.
type AgentSummary struct {
	Agent          int     `yaml:"agent"`
	Games          int     `yaml:"games"`
	Wins           int     `yaml:"wins"`
	Losses         int     `yaml:"losses"`
	Draws          int     `yaml:"draws"`
	Moves          int     `yaml:"moves"`
	MeanIterations float64 `yaml:"mean_iterations"`
	StdIterations  float64 `yaml:"std_iterations"`
	MeanThroughput float64 `yaml:"mean_throughput"` // iterations per second
	MeanValue      float64 `yaml:"mean_value"`
}

// Summarize returns one summary per agent config, in config order.
func Summarize(configs []AgentConfig, games []GameRecord, moves []MoveRecord) []AgentSummary {
	byGame := make(map[int]GameRecord, len(games))
	summaries := make([]AgentSummary, len(configs))
	index := make(map[int]int, len(configs))
	for i, c := range configs {
		summaries[i].Agent = c.ID
		index[c.ID] = i
	}

	tally := func(agent int, color string, winner string) {
		i, ok := index[agent]
		if !ok {
			return
		}
		summaries[i].Games++
		switch winner {
		case color:
			summaries[i].Wins++
		case "none":
			summaries[i].Draws++
		default:
			summaries[i].Losses++
		}
	}
	for _, g := range games {
		byGame[g.ID] = g
		tally(g.Agent1, "red", g.Winner)
		tally(g.Agent2, "black", g.Winner)
	}

	iterations := make([][]float64, len(configs))
	throughput := make([][]float64, len(configs))
	values := make([][]float64, len(configs))
	for _, m := range moves {
		g, ok := byGame[m.Game]
		if !ok {
			continue
		}
		agent := g.Agent2
		if m.Player == "red" {
			agent = g.Agent1
		}
		i, ok := index[agent]
		if !ok {
			continue
		}
		iterations[i] = append(iterations[i], float64(m.Confidence))
		values[i] = append(values[i], m.Value)
		if secs := m.Duration.Seconds(); secs > 0 {
			throughput[i] = append(throughput[i], float64(m.Iterations)/secs)
		}
	}

	for i := range summaries {
		summaries[i].Moves = len(iterations[i])
		summaries[i].MeanIterations, summaries[i].StdIterations = meanStdDev(iterations[i])
		summaries[i].MeanThroughput, _ = meanStdDev(throughput[i])
		summaries[i].MeanValue, _ = meanStdDev(values[i])
	}
	return summaries
}

func meanStdDev(x []float64) (float64, float64) {
	switch len(x) {
	case 0:
		return 0, 0
	case 1:
		return x[0], 0
	default:
		return stat.MeanStdDev(x, nil)
	}
}

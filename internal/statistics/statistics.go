package statistics

import (
	"fmt"
	"math"
	"slices"
	"sort"
)

// Placement is one agent's finish in one tournament.
type Placement struct {
	Place       int   // 1 is the winner
	Seats       int   // field size
	Stack       int   // chips at the end
	BustedRound int   // round in which the seat busted, 0 if it survived
	Hands       int   // hands the tournament lasted
	Seed        int64 // tournament seed, for replay
}

// Statistics accumulates placements across many tournaments.
type Statistics struct {
	Runs      int
	SumPlace  float64
	SumPlace2 float64   // sum of squares for variance
	Places    []float64 // kept for median and percentiles
	Wins      int
	Busts     int
	SumHands  int
	BestPlace int
	WorstSeed int64 // seed of the worst finish
	worst     int
}

// Add incorporates one placement.
func (s *Statistics) Add(p Placement) {
	place := float64(p.Place)
	s.Runs++
	s.SumPlace += place
	s.SumPlace2 += place * place
	s.Places = append(s.Places, place)
	s.SumHands += p.Hands

	if p.Place == 1 {
		s.Wins++
	}
	if p.BustedRound > 0 {
		s.Busts++
	}
	if s.BestPlace == 0 || p.Place < s.BestPlace {
		s.BestPlace = p.Place
	}
	if p.Place > s.worst {
		s.worst = p.Place
		s.WorstSeed = p.Seed
	}
}

// Mean returns the average finishing place.
func (s *Statistics) Mean() float64 {
	if s.Runs == 0 {
		return 0
	}
	return s.SumPlace / float64(s.Runs)
}

// Variance returns the sample variance of the finishing place.
func (s *Statistics) Variance() float64 {
	if s.Runs < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumPlace2 - float64(s.Runs)*mean*mean) / float64(s.Runs-1)
}

// StdDev returns the sample standard deviation of the finishing place.
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(math.Max(s.Variance(), 0))
}

// StdError returns the standard error of the mean place.
func (s *Statistics) StdError() float64 {
	if s.Runs == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Runs))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean place.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate is the fraction of tournaments won.
func (s *Statistics) WinRate() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Runs)
}

// MeanHands is the average tournament length in hands.
func (s *Statistics) MeanHands() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.SumHands) / float64(s.Runs)
}

// Median returns the median finishing place.
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the finishing place at p (0.0 to 1.0), interpolated.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Places) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Places)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks the accumulators agree with each other.
func (s *Statistics) Validate() error {
	if s.Runs != len(s.Places) {
		return fmt.Errorf("run count mismatch: runs=%d, places=%d", s.Runs, len(s.Places))
	}
	if s.Wins > s.Runs {
		return fmt.Errorf("more wins (%d) than runs (%d)", s.Wins, s.Runs)
	}
	var sum float64
	for _, p := range s.Places {
		if p < 1 {
			return fmt.Errorf("invalid place %v", p)
		}
		sum += p
	}
	if math.Abs(sum-s.SumPlace) > 1e-6 {
		return fmt.Errorf("place sum mismatch: recorded=%.6f, actual=%.6f", s.SumPlace, sum)
	}
	return nil
}

// ByAgent groups statistics by agent name.
type ByAgent map[string]*Statistics

// Add records a placement for agent.
func (b ByAgent) Add(agent string, p Placement) {
	s, ok := b[agent]
	if !ok {
		s = &Statistics{}
		b[agent] = s
	}
	s.Add(p)
}

// Ranked returns agent names ordered by mean place, best first, then by name.
func (b ByAgent) Ranked() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		mi, mj := b[names[i]].Mean(), b[names[j]].Mean()
		if mi != mj {
			return mi < mj
		}
		return names[i] < names[j]
	})
	return names
}

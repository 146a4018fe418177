// Package diagnostics measures real cache effectiveness by timing repeated
// home view builds against cold and warm latency budgets.
package diagnostics

import (
	"time"

	"github.com/primeflix-cli/primeflix/backend"
	"github.com/primeflix-cli/primeflix/log"
)

// runs is the fixed number of home view builds per harness run. The first is
// forced cold, the rest exercise the cache.
const runs = 3

// Thresholds are the latency budgets in milliseconds, split by temperature.
type Thresholds struct {
	HomeColdMs int64
	HomeWarmMs int64
	RailColdMs int64
	RailWarmMs int64
}

// DefaultThresholds are the budgets interactive navigation is expected to meet.
var DefaultThresholds = Thresholds{
	HomeColdMs: 1500,
	HomeWarmMs: 300,
	RailColdMs: 800,
	RailWarmMs: 200,
}

// Timing records one measured fetch.
type Timing struct {
	Run       int   `json:"run"`
	Warm      bool  `json:"warm"`
	ElapsedMs int64 `json:"elapsed_ms"`
	Breached  bool  `json:"breached"`
}

// RailTiming groups the measured fetches of one rail.
type RailTiming struct {
	RailID  string   `json:"rail_id"`
	Timings []Timing `json:"timings"`
}

// Report is the outcome of one harness run.
type Report struct {
	Descriptor backend.Descriptor `json:"descriptor"`
	Home       []Timing           `json:"home"`
	Rail       *RailTiming        `json:"rail,omitempty"`

	// Breaches counts timings exceeding their budget across the whole run.
	Breaches int `json:"breaches"`
}

// Harness drives the measurement against a live backend facade.
type Harness struct {
	service    *backend.Service
	thresholds Thresholds

	now func() time.Time
}

// NewHarness builds a harness with the default budgets.
func NewHarness(service *backend.Service) *Harness {
	return &Harness{service: service, thresholds: DefaultThresholds, now: time.Now}
}

// Run builds the home view exactly three times, invalidating the relevant
// cache entries first so the opening run is genuinely cold, and times the
// first rail alongside. Budgets are picked per fetch by its temperature.
func (h *Harness) Run() (Report, error) {
	descriptor, err := h.service.Select()
	if err != nil {
		return Report{}, err
	}
	report := Report{Descriptor: descriptor}

	if cache := h.service.Cache(); cache != nil {
		cache.ClearPrefix("home")
		cache.ClearPrefix("rail")
	}

	var railID string
	for run := 1; run <= runs; run++ {
		force := run == 1

		start := h.now()
		rails, warm, err := h.service.HomeRails(force)
		if err != nil {
			return report, err
		}
		report.Home = append(report.Home, h.timing(run, warm, start, h.thresholds.HomeColdMs, h.thresholds.HomeWarmMs))

		if railID == "" && len(rails) > 0 {
			railID = rails[0].Identifier
			report.Rail = &RailTiming{RailID: railID}
		}
		if railID == "" {
			continue
		}

		start = h.now()
		_, warm, err = h.service.Rail(railID, "", force)
		if err != nil {
			return report, err
		}
		report.Rail.Timings = append(report.Rail.Timings, h.timing(run, warm, start, h.thresholds.RailColdMs, h.thresholds.RailWarmMs))
	}

	for _, t := range report.Home {
		if t.Breached {
			report.Breaches++
		}
	}
	if report.Rail != nil {
		for _, t := range report.Rail.Timings {
			if t.Breached {
				report.Breaches++
			}
		}
	}

	log.Infof("diagnostics: %d home builds, %d budget breaches", runs, report.Breaches)
	return report, nil
}

func (h *Harness) timing(run int, warm bool, start time.Time, coldBudget, warmBudget int64) Timing {
	elapsed := h.now().Sub(start).Milliseconds()
	budget := coldBudget
	if warm {
		budget = warmBudget
	}
	if elapsed > budget {
		log.Warnf("diagnostics: run %d took %dms, budget is %dms", run, elapsed, budget)
	}
	return Timing{
		Run:       run,
		Warm:      warm,
		ElapsedMs: elapsed,
		Breached:  elapsed > budget,
	}
}

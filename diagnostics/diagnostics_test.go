package diagnostics

import (
	"testing"
	"time"

	"github.com/primeflix-cli/primeflix/backend"
	"github.com/primeflix-cli/primeflix/filesystem"
	"github.com/primeflix-cli/primeflix/internal/cache"
	"github.com/primeflix-cli/primeflix/key"
	"github.com/primeflix-cli/primeflix/platform"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func harnessFixture() (*Harness, *platform.FakeExecutor) {
	filesystem.SetMemMapFs()
	viper.Set(key.BackendCandidates, []string{"extension.video.primevideo"})
	viper.Set(key.BackendCategory, "video.provider")
	viper.Set(key.CacheEnabled, true)
	viper.Set(key.CacheTTLSeconds, 300)
	viper.Set(key.SearchPageLimit, 40)

	executor := &platform.FakeExecutor{Responses: map[string]any{
		"home_rails": map[string]any{"rails": []any{
			map[string]any{"id": "watchlist", "title": "Your Watchlist", "items": []any{
				map[string]any{"asin": "B1", "title": "First"},
			}},
		}},
		"rail": map[string]any{"items": []any{
			map[string]any{"id": "B1", "title": "First"},
		}},
	}}

	registry := &platform.FakeRegistry{Extensions: []platform.Extension{
		{ID: "extension.video.primevideo", Category: "video.provider", Path: "/ext/none"},
	}}
	service := backend.NewService(backend.Options{
		Registry: registry,
		Executor: executor,
		Cache:    cache.New("/cache/backend"),
	})

	return NewHarness(service), executor
}

func TestHarness(t *testing.T) {
	Convey("Given a harness over a cached backend", t, func() {
		harness, executor := harnessFixture()

		Convey("A run builds the home view exactly three times", func() {
			report, err := harness.Run()
			So(err, ShouldBeNil)

			So(report.Descriptor.Strategy, ShouldEqual, backend.StrategyRPC)
			So(report.Home, ShouldHaveLength, 3)

			Convey("Only the opening run is cold", func() {
				So(report.Home[0].Warm, ShouldBeFalse)
				So(report.Home[1].Warm, ShouldBeTrue)
				So(report.Home[2].Warm, ShouldBeTrue)
			})

			Convey("The first rail is timed with the same pattern", func() {
				So(report.Rail, ShouldNotBeNil)
				So(report.Rail.RailID, ShouldEqual, "watchlist")
				So(report.Rail.Timings, ShouldHaveLength, 3)
				So(report.Rail.Timings[0].Warm, ShouldBeFalse)
				So(report.Rail.Timings[1].Warm, ShouldBeTrue)
			})

			Convey("Warm runs never reach the provider", func() {
				So(executor.Calls, ShouldHaveLength, 2)
			})
		})

		Convey("A stale cache entry does not spoil the cold run", func() {
			_, _, err := harness.service.HomeRails(false)
			So(err, ShouldBeNil)

			report, err := harness.Run()
			So(err, ShouldBeNil)
			So(report.Home[0].Warm, ShouldBeFalse)
		})

		Convey("With a slow clock every fetch is measured against its budget", func() {
			clock := time.Unix(0, 0)
			harness.now = func() time.Time {
				clock = clock.Add(time.Second)
				return clock
			}

			report, err := harness.Run()
			So(err, ShouldBeNil)

			Convey("Cold home builds stay inside the relaxed budget", func() {
				So(report.Home[0].ElapsedMs, ShouldEqual, 1000)
				So(report.Home[0].Breached, ShouldBeFalse)
			})

			Convey("Warm builds are held to the strict budget", func() {
				So(report.Home[1].Breached, ShouldBeTrue)
				So(report.Home[2].Breached, ShouldBeTrue)
			})

			Convey("Rail budgets are tighter across the board", func() {
				So(report.Rail.Timings[0].Breached, ShouldBeTrue)
				So(report.Breaches, ShouldEqual, 5)
			})
		})
	})
}

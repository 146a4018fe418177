package backend

import (
	"testing"

	"github.com/primeflix-cli/primeflix/filesystem"
	"github.com/primeflix-cli/primeflix/internal/cache"
	"github.com/primeflix-cli/primeflix/key"
	"github.com/primeflix-cli/primeflix/platform"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

// serviceFixture wires a facade around an installed extension with no entry
// script, which forces the RPC strategy against the scripted executor.
func serviceFixture(executor *platform.FakeExecutor) *Service {
	filesystem.SetMemMapFs()
	viper.Set(key.BackendCandidates, []string{"extension.video.primevideo"})
	viper.Set(key.BackendCategory, "video.provider")
	viper.Set(key.CacheEnabled, true)
	viper.Set(key.CacheTTLSeconds, 300)
	viper.Set(key.SearchPageLimit, 40)

	registry := &platform.FakeRegistry{Extensions: []platform.Extension{
		{ID: "extension.video.primevideo", Category: "video.provider", Path: "/ext/none"},
	}}

	return NewService(Options{
		Registry: registry,
		Executor: executor,
		Cache:    cache.New("/cache/backend"),
	})
}

func homeResponse() map[string]any {
	return map[string]any{
		"rails": []any{
			map[string]any{"id": "watchlist", "title": "Your Watchlist", "items": []any{
				map[string]any{"asin": "B1", "title": "First"},
			}},
		},
	}
}

func TestServiceSelection(t *testing.T) {
	Convey("Given an extension reachable only over RPC", t, func() {
		service := serviceFixture(&platform.FakeExecutor{})

		Convey("Selection falls back and memoizes", func() {
			desc, err := service.Select()
			So(err, ShouldBeNil)
			So(desc.BackendID, ShouldEqual, "extension.video.primevideo")
			So(desc.Strategy, ShouldEqual, StrategyRPC)

			again, err := service.Select()
			So(err, ShouldBeNil)
			So(again, ShouldResemble, desc)
			So(service.Descriptor().MustGet(), ShouldResemble, desc)
		})
	})

	Convey("Given no installed provider extension", t, func() {
		filesystem.SetMemMapFs()
		viper.Set(key.BackendCandidates, []string{"extension.video.primevideo"})
		service := NewService(Options{Registry: &platform.FakeRegistry{}, Executor: &platform.FakeExecutor{}})

		Convey("Selection fails and nothing is memoized", func() {
			_, err := service.Select()
			So(err, ShouldHaveSameTypeAs, &UnavailableError{})
			So(service.Descriptor().IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestServiceCaching(t *testing.T) {
	Convey("Given a facade over a scripted executor", t, func() {
		executor := &platform.FakeExecutor{Responses: map[string]any{
			"home_rails": homeResponse(),
		}}
		service := serviceFixture(executor)

		Convey("The first fetch is cold and the second warm", func() {
			rails, warm, err := service.HomeRails(false)
			So(err, ShouldBeNil)
			So(warm, ShouldBeFalse)
			So(rails, ShouldHaveLength, 1)

			cached, warm, err := service.HomeRails(false)
			So(err, ShouldBeNil)
			So(warm, ShouldBeTrue)
			So(cached, ShouldResemble, rails)
			So(executor.Calls, ShouldHaveLength, 1)
		})

		Convey("A forced refresh bypasses the lookup but rewrites the entry", func() {
			_, _, err := service.HomeRails(false)
			So(err, ShouldBeNil)

			_, warm, err := service.HomeRails(true)
			So(err, ShouldBeNil)
			So(warm, ShouldBeFalse)
			So(executor.Calls, ShouldHaveLength, 2)

			_, warm, err = service.HomeRails(false)
			So(err, ShouldBeNil)
			So(warm, ShouldBeTrue)
		})

		Convey("Disabling the cache makes every fetch cold", func() {
			viper.Set(key.CacheEnabled, false)

			_, warm, err := service.HomeRails(false)
			So(err, ShouldBeNil)
			So(warm, ShouldBeFalse)

			_, warm, err = service.HomeRails(false)
			So(err, ShouldBeNil)
			So(warm, ShouldBeFalse)
			So(executor.Calls, ShouldHaveLength, 2)
		})
	})

	Convey("Given distinct rail and search requests", t, func() {
		executor := &platform.FakeExecutor{Responses: map[string]any{
			"rail": map[string]any{"items": []any{
				map[string]any{"id": "B1", "title": "One"},
			}},
			"search": map[string]any{"results": []any{
				map[string]any{"id": "S1", "title": "Found"},
			}},
		}}
		service := serviceFixture(executor)

		Convey("Each request shape caches under its own key", func() {
			page, warm, err := service.Rail("watchlist", "", false)
			So(err, ShouldBeNil)
			So(warm, ShouldBeFalse)
			So(page.Items[0].ID, ShouldEqual, "B1")

			results, warm, err := service.Search("breaking", "", false)
			So(err, ShouldBeNil)
			So(warm, ShouldBeFalse)
			So(results.Items[0].ID, ShouldEqual, "S1")

			_, warm, err = service.Rail("watchlist", "", false)
			So(err, ShouldBeNil)
			So(warm, ShouldBeTrue)

			_, warm, err = service.Rail("watchlist", "page2", false)
			So(err, ShouldBeNil)
			So(warm, ShouldBeFalse)
		})
	})

	Convey("Given a playable lookup", t, func() {
		executor := &platform.FakeExecutor{Responses: map[string]any{
			"playable": map[string]any{"stream_url": "https://cdn/B1.mpd"},
		}}
		service := serviceFixture(executor)

		Convey("The normalized result round-trips through the cache", func() {
			playable, warm, err := service.Playable("B1", false)
			So(err, ShouldBeNil)
			So(warm, ShouldBeFalse)
			So(playable.StreamURL, ShouldEqual, "https://cdn/B1.mpd")

			cached, warm, err := service.Playable("B1", false)
			So(err, ShouldBeNil)
			So(warm, ShouldBeTrue)
			So(cached.StreamURL, ShouldEqual, playable.StreamURL)
			So(cached.ManifestType, ShouldEqual, "mpd")
		})
	})
}

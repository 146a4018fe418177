package backend

import (
	"errors"
	"testing"

	"github.com/primeflix-cli/primeflix/platform"
	. "github.com/smartystreets/goconvey/convey"
)

func rpcFixture(executor *platform.FakeExecutor) *RPCAdapter {
	registry := &platform.FakeRegistry{Extensions: []platform.Extension{
		{ID: "extension.video.primevideo", Category: "video.provider"},
	}}
	adapter, err := NewRPCAdapter("extension.video.primevideo", registry, executor)
	So(err, ShouldBeNil)
	return adapter
}

func TestRPCAdapter(t *testing.T) {
	Convey("Given an extension that is not installed", t, func() {
		_, err := NewRPCAdapter("extension.video.ghost", &platform.FakeRegistry{}, &platform.FakeExecutor{})

		Convey("Construction fails with an unavailability error", func() {
			So(err, ShouldHaveSameTypeAs, &UnavailableError{})
		})
	})

	Convey("Given a double-encoded JSON response envelope", t, func() {
		executor := &platform.FakeExecutor{Responses: map[string]any{
			"home_rails": `{"rails":[{"id":"movies","title":"Movies"}]}`,
		}}
		adapter := rpcFixture(executor)

		Convey("The payload is decoded exactly once", func() {
			raw, err := adapter.HomeRails()
			So(err, ShouldBeNil)

			m, ok := raw.(map[string]any)
			So(ok, ShouldBeTrue)
			So(m["rails"], ShouldHaveLength, 1)
		})
	})

	Convey("Given a string response that is not JSON", t, func() {
		executor := &platform.FakeExecutor{Responses: map[string]any{
			"region": "US",
		}}
		adapter := rpcFixture(executor)

		Convey("It survives as a literal scalar", func() {
			raw, err := adapter.Region()
			So(err, ShouldBeNil)
			So(raw, ShouldEqual, "US")
		})
	})

	Convey("Given a response carrying an error field", t, func() {
		executor := &platform.FakeExecutor{Responses: map[string]any{
			"search": map[string]any{"error": "service unavailable"},
		}}
		adapter := rpcFixture(executor)

		Convey("The call fails as an operation error", func() {
			_, err := adapter.Search("breaking", "", 40)
			So(err, ShouldHaveSameTypeAs, &OpError{})
			So(err.Error(), ShouldContainSubstring, "service unavailable")
		})
	})

	Convey("Given a rail action that fails but a browsable directory", t, func() {
		executor := &platform.FakeExecutor{
			Errors: map[string]error{"rail": errors.New("action not supported")},
			Listings: map[string][]platform.DirectoryEntry{
				"extension://extension.video.primevideo/rail/watchlist": {
					{Label: "First", File: "B1", Plot: "a plot"},
					{Label: "Second", File: "B2", Art: map[string]string{"poster": "p.jpg"}},
				},
			},
		}
		adapter := rpcFixture(executor)

		Convey("The fetch is emulated through the directory listing", func() {
			raw, err := adapter.Rail("watchlist", "", 40)
			So(err, ShouldBeNil)

			items := NormalizeItems(raw)
			So(items, ShouldHaveLength, 2)
			So(items[0].ID, ShouldEqual, "B1")
			So(items[1].Art.Poster, ShouldEqual, "p.jpg")
		})
	})

	Convey("Given a rail action that fails with no directory either", t, func() {
		executor := &platform.FakeExecutor{
			Errors: map[string]error{"rail": errors.New("action not supported")},
		}
		adapter := rpcFixture(executor)

		Convey("The original operation error surfaces", func() {
			_, err := adapter.Rail("watchlist", "", 40)
			So(err, ShouldHaveSameTypeAs, &OpError{})
			So(err.Error(), ShouldContainSubstring, "action not supported")
		})
	})

	Convey("Given DRM status responses of varying shape", t, func() {
		Convey("A bare boolean is honored", func() {
			adapter := rpcFixture(&platform.FakeExecutor{Responses: map[string]any{
				"drm_status": true,
			}})
			So(adapter.DRMReady().MustGet(), ShouldBeTrue)
		})

		Convey("An enveloped ready flag is honored", func() {
			adapter := rpcFixture(&platform.FakeExecutor{Responses: map[string]any{
				"drm_status": map[string]any{"ready": false},
			}})
			So(adapter.DRMReady().MustGet(), ShouldBeFalse)
		})

		Convey("A failing call reads as unknown", func() {
			adapter := rpcFixture(&platform.FakeExecutor{
				Errors: map[string]error{"drm_status": errors.New("timeout")},
			})
			So(adapter.DRMReady().IsAbsent(), ShouldBeTrue)
		})
	})
}

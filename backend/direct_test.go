package backend

import (
	"path/filepath"
	"testing"

	"github.com/primeflix-cli/primeflix/filesystem"
	"github.com/primeflix-cli/primeflix/platform"
	. "github.com/smartystreets/goconvey/convey"
)

const capableScript = `
provider = {}

function provider.homeRails()
    return {
        { id = "watchlist", title = "Your Watchlist", items = {
            { asin = "B1", title = "First" },
        } },
    }
end

function provider.railItems(id, cursor, limit)
    return { items = { { asin = id .. "-1", title = "Item" } }, next_cursor = "more" }
end

function provider.searchVideos(query, cursor, limit)
    return { results = { { id = "S1", title = query } } }
end

function provider.getPlayable(id)
    return { stream_url = "https://cdn/" .. id .. ".mpd", manifest_type = "mpd" }
end

function provider.isDrmReady()
    return true
end
`

const globalsScript = `
function browse(args)
    if type(args) ~= "table" then
        error("keyword table expected")
    end
    return { { id = args.id, title = "via keywords" } }
end

function getStream(id)
    return { url = "https://cdn/stream.mpd" }
end
`

const lackingScript = `
function searchVideos(query)
    return {}
end
`

// installScript writes an extension with the given entry script into the
// in-memory filesystem and returns a registry knowing about it.
func installScript(dir, entry, script string) *platform.FakeRegistry {
	So(filesystem.API().MkdirAll(dir, 0o755), ShouldBeNil)
	So(filesystem.API().WriteFile(filepath.Join(dir, entry), []byte(script), 0o644), ShouldBeNil)

	return &platform.FakeRegistry{Extensions: []platform.Extension{
		{ID: "extension.video.primevideo", Category: "video.provider", Path: dir, Entry: entry},
	}}
}

func TestDirectAdapter(t *testing.T) {
	Convey("Setup", t, func() {
		filesystem.SetMemMapFs()
		loader := NewScriptLoader()

		Convey("Given an entry script exposing the capability set on a table", func() {
			registry := installScript("/ext/capable", "main.lua", capableScript)
			adapter, err := NewDirectAdapter("extension.video.primevideo", registry, loader)
			So(err, ShouldBeNil)
			defer adapter.Close()

			So(adapter.Strategy(), ShouldEqual, StrategyDirect)

			Convey("Home rails come back as normalizable data", func() {
				raw, err := adapter.HomeRails()
				So(err, ShouldBeNil)

				rails := NormalizeRails(raw)
				So(rails, ShouldHaveLength, 1)
				So(rails[0].Identifier, ShouldEqual, "watchlist")
				So(rails[0].Items[0].ID, ShouldEqual, "B1")
			})

			Convey("Rail calls pass arguments positionally", func() {
				raw, err := adapter.Rail("movies", "", 40)
				So(err, ShouldBeNil)

				page := NormalizePage(raw)
				So(page.Items[0].ID, ShouldEqual, "movies-1")
				So(page.NextCursor.MustGet(), ShouldEqual, "more")
			})

			Convey("Search and playable reach their accessors", func() {
				raw, err := adapter.Search("breaking", "", 40)
				So(err, ShouldBeNil)
				So(NormalizePage(raw).Items[0].Title, ShouldEqual, "breaking")

				rawPlayable, err := adapter.Playable("B1")
				So(err, ShouldBeNil)
				playable, err := NormalizePlayable(rawPlayable)
				So(err, ShouldBeNil)
				So(playable.StreamURL, ShouldEqual, "https://cdn/B1.mpd")
			})

			Convey("DRM readiness reads the probe result", func() {
				So(adapter.DRMReady().MustGet(), ShouldBeTrue)
			})
		})

		Convey("Given a script exposing plain globals that want keyword tables", func() {
			registry := installScript("/ext/globals", "addon.lua", globalsScript)
			adapter, err := NewDirectAdapter("extension.video.primevideo", registry, loader)
			So(err, ShouldBeNil)
			defer adapter.Close()

			Convey("A failed positional call retries with a keyword table", func() {
				raw, err := adapter.Rail("watchlist", "", 40)
				So(err, ShouldBeNil)
				So(NormalizeItems(raw)[0].ID, ShouldEqual, "watchlist")
			})

			Convey("Missing accessors fail per operation, not per binding", func() {
				_, err := adapter.HomeRails()
				So(err, ShouldHaveSameTypeAs, &OpError{})
			})
		})

		Convey("Given a script lacking the required capability set", func() {
			registry := installScript("/ext/lacking", "main.lua", lackingScript)
			_, err := NewDirectAdapter("extension.video.primevideo", registry, loader)

			Convey("Construction fails with the collected reasons", func() {
				So(err, ShouldHaveSameTypeAs, &UnavailableError{})
				So(err.Error(), ShouldContainSubstring, "capability set")
			})
		})

		Convey("Given an extension with no entry script at all", func() {
			So(filesystem.API().MkdirAll("/ext/empty", 0o755), ShouldBeNil)
			registry := &platform.FakeRegistry{Extensions: []platform.Extension{
				{ID: "extension.video.primevideo", Path: "/ext/empty"},
			}}

			_, err := NewDirectAdapter("extension.video.primevideo", registry, loader)
			So(err, ShouldHaveSameTypeAs, &UnavailableError{})
			So(err.Error(), ShouldContainSubstring, "no entry script")
		})

		Convey("Given an extension that is not installed", func() {
			_, err := NewDirectAdapter("extension.video.ghost", &platform.FakeRegistry{}, loader)
			So(err, ShouldHaveSameTypeAs, &UnavailableError{})
		})
	})
}

package backend

import (
	"testing"

	"github.com/primeflix-cli/primeflix/platform"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLocator(t *testing.T) {
	Convey("Given two candidates and only the second installed", t, func() {
		registry := &platform.FakeRegistry{Extensions: []platform.Extension{
			{ID: "extension.video.amazonvod", Category: "video.provider"},
		}}
		locator := NewLocator(registry, nil, "video.provider")

		Convey("Discovery resolves deterministically to the installed one", func() {
			for range 3 {
				So(locator.Discover().MustGet(), ShouldEqual, "extension.video.amazonvod")
			}
		})
	})

	Convey("Given both candidates installed", t, func() {
		registry := &platform.FakeRegistry{Extensions: []platform.Extension{
			{ID: "extension.video.amazonvod", Category: "video.provider"},
			{ID: "extension.video.primevideo", Category: "video.provider"},
		}}
		locator := NewLocator(registry, nil, "video.provider")

		Convey("Candidate order wins over registry order", func() {
			So(locator.Discover().MustGet(), ShouldEqual, "extension.video.primevideo")
		})
	})

	Convey("Given no known candidate but a prefix-matching extension", t, func() {
		registry := &platform.FakeRegistry{Extensions: []platform.Extension{
			{ID: "extension.audio.podcasts", Category: "audio.provider"},
			{ID: "extension.video.thirdparty", Category: "video.provider"},
		}}
		locator := NewLocator(registry, nil, "video.provider")

		Convey("Enumeration picks it up as a fallback", func() {
			So(locator.Discover().MustGet(), ShouldEqual, "extension.video.thirdparty")
		})
	})

	Convey("Given an empty registry", t, func() {
		locator := NewLocator(&platform.FakeRegistry{}, nil, "video.provider")

		Convey("Discovery returns None and never errors", func() {
			So(locator.Discover().IsAbsent(), ShouldBeTrue)
		})
	})

	Convey("Given an explicit candidate override", t, func() {
		registry := &platform.FakeRegistry{Extensions: []platform.Extension{
			{ID: "extension.video.custom", Category: "video.provider"},
		}}
		locator := NewLocator(registry, []string{"extension.video.custom"}, "video.provider")

		Convey("The override replaces the default list", func() {
			So(locator.Discover().MustGet(), ShouldEqual, "extension.video.custom")
		})
	})
}

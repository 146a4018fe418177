package platform

import (
	"path/filepath"
	"testing"

	"github.com/primeflix-cli/primeflix/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func writeManifest(root, dir, body string) {
	path := filepath.Join(root, dir)
	lo.Must0(filesystem.API().MkdirAll(path, 0o755))
	lo.Must0(filesystem.API().WriteFile(filepath.Join(path, ManifestName), []byte(body), 0o644))
}

func TestDirRegistry(t *testing.T) {
	Convey("DirRegistry", t, func() {
		filesystem.SetMemMapFs()
		root := "/extensions"
		writeManifest(root, "primevideo", `{"id":"extension.video.primevideo","category":"video.provider","entry":"main.lua","enabled":true}`)
		writeManifest(root, "weather", `{"id":"extension.weather","category":"weather","enabled":true}`)
		writeManifest(root, "broken", `{not json`)

		reg := NewDirRegistry(root)

		Convey("Exists finds installed extensions", func() {
			So(reg.Exists("extension.video.primevideo"), ShouldBeTrue)
			So(reg.Exists("extension.video.missing"), ShouldBeFalse)
		})

		Convey("Lookup resolves the install path", func() {
			ext, ok := reg.Lookup("extension.video.primevideo")
			So(ok, ShouldBeTrue)
			So(ext.Path, ShouldEqual, filepath.Join(root, "primevideo"))
			So(ext.Entry, ShouldEqual, "main.lua")
		})

		Convey("Enumerate filters by category", func() {
			providers := reg.Enumerate("video.provider")
			So(providers, ShouldHaveLength, 1)
			So(providers[0].ID, ShouldEqual, "extension.video.primevideo")
		})

		Convey("Malformed manifests are skipped, not fatal", func() {
			all := reg.Enumerate("")
			So(all, ShouldHaveLength, 2)
		})

		Convey("Missing root yields an empty registry", func() {
			empty := NewDirRegistry("/nowhere")
			So(empty.Enumerate(""), ShouldBeEmpty)
		})
	})
}

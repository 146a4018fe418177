package query

import (
	"testing"

	"github.com/primeflix-cli/primeflix/filesystem"
	"github.com/primeflix-cli/primeflix/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.SearchShowQuerySuggestions, true)
}

func TestQuery(t *testing.T) {
	Convey("Given remembered queries of different popularity", t, func() {
		So(Remember("breaking bad", 1), ShouldBeNil)
		So(Remember("the boys", 10), ShouldBeNil)

		Convey("Suggestions come back most popular first", func() {
			suggestionCache = make(map[string][]*record)

			s := SuggestMany("b")
			So(len(s), ShouldBeGreaterThanOrEqualTo, 2)
			So(s[0], ShouldEqual, "the boys")
		})

		Convey("A single suggestion picks the top match", func() {
			suggestionCache = make(map[string][]*record)
			So(Suggest("boy").MustGet(), ShouldEqual, "the boys")
		})

		Convey("Input is sanitized before matching", func() {
			So(sanitize("  The BOYS  "), ShouldEqual, "the boys")
		})

		Convey("Suggestions can be disabled through configuration", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			So(SuggestMany("b"), ShouldBeEmpty)
			viper.Set(key.SearchShowQuerySuggestions, true)
		})
	})
}

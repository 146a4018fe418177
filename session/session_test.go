package session

import (
	"testing"

	"github.com/primeflix-cli/primeflix/filesystem"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func init() {
	filesystem.SetMemMapFs()
	keyring.MockInit()
}

func TestSession(t *testing.T) {
	Convey("Given a fresh environment", t, func() {
		So(Clear(), ShouldBeNil)

		Convey("Nobody is logged in", func() {
			So(LoggedIn(), ShouldBeFalse)
			So(Get().IsAbsent(), ShouldBeTrue)
		})

		Convey("When a token and a profile are stored", func() {
			So(SetToken("secret"), ShouldBeNil)
			So(Save(Profile{Email: "user@example.com", Region: "US"}), ShouldBeNil)

			Convey("The login state is complete", func() {
				So(LoggedIn(), ShouldBeTrue)

				profile := Get().MustGet()
				So(profile.Email, ShouldEqual, "user@example.com")
				So(profile.Region, ShouldEqual, "US")
				So(profile.LastLoginAt.IsZero(), ShouldBeFalse)

				token, err := Token()
				So(err, ShouldBeNil)
				So(token, ShouldEqual, "secret")
			})

			Convey("A token without a profile is not enough", func() {
				So(Clear(), ShouldBeNil)
				So(SetToken("secret"), ShouldBeNil)
				So(LoggedIn(), ShouldBeFalse)
			})

			Convey("Clearing removes both halves", func() {
				So(Clear(), ShouldBeNil)
				So(LoggedIn(), ShouldBeFalse)
				_, err := Token()
				So(err, ShouldNotBeNil)
			})
		})
	})
}

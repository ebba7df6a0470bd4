package auth

import (
	"testing"

	"github.com/dexcli/dex/mangadex"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func TestKeyring(t *testing.T) {
	Convey("Given a mocked keyring", t, func() {
		keyring.MockInit()

		Convey("Loading nothing should be empty, not an error", func() {
			creds, err := Load()
			So(err, ShouldBeNil)
			So(creds.IsAbsent(), ShouldBeTrue)
		})

		Convey("Saved credentials should load back", func() {
			pair := mangadex.Credentials{Session: "sessiontoken", Refresh: "refreshtoken"}
			So(Save(pair), ShouldBeNil)

			creds, err := Load()
			So(err, ShouldBeNil)
			So(creds, ShouldResemble, mo.Some(pair))

			Convey("And be gone after deletion", func() {
				So(Delete(), ShouldBeNil)
				creds, err := Load()
				So(err, ShouldBeNil)
				So(creds.IsAbsent(), ShouldBeTrue)
				So(Delete(), ShouldBeNil)
			})
		})

		Convey("Sync should mirror the option", func() {
			pair := mangadex.Credentials{Session: "a", Refresh: "b"}
			So(Sync(mo.Some(pair)), ShouldBeNil)
			So(mustLoad(), ShouldResemble, mo.Some(pair))

			So(Sync(mo.None[mangadex.Credentials]()), ShouldBeNil)
			So(mustLoad().IsAbsent(), ShouldBeTrue)
		})

		Convey("Corrupted entries should be reported", func() {
			So(keyring.Set(service, user, "{"), ShouldBeNil)
			_, err := Load()
			So(err, ShouldNotBeNil)
		})
	})
}

func mustLoad() mo.Option[mangadex.Credentials] {
	creds, err := Load()
	So(err, ShouldBeNil)
	return creds
}

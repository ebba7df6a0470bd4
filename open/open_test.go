package open

import (
	"runtime"
	"testing"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"
)

func TestURLs(t *testing.T) {
	Convey("Website links should be built from ids", t, func() {
		id := uuid.MustParse("32d76d19-8a05-4db0-9fc2-e0b0648fe9d0")
		So(MangaURL(id), ShouldEqual, "https://mangadex.org/title/32d76d19-8a05-4db0-9fc2-e0b0648fe9d0")
		So(ChapterURL(id), ShouldEqual, "https://mangadex.org/chapter/32d76d19-8a05-4db0-9fc2-e0b0648fe9d0")
	})
}

func TestCommand(t *testing.T) {
	Convey("Given the current platform", t, func() {
		if runtime.GOOS != "linux" {
			SkipSo()
			return
		}

		Convey("The default handler should be xdg-open", func() {
			cmd, ok := command("https://mangadex.org")
			So(ok, ShouldBeTrue)
			So(cmd.Args, ShouldResemble, []string{"xdg-open", "https://mangadex.org"})
		})

		Convey("A custom app should receive the url", func() {
			cmd, ok := commandWith("https://mangadex.org", "firefox")
			So(ok, ShouldBeTrue)
			So(cmd.Args, ShouldResemble, []string{"firefox", "https://mangadex.org"})
		})
	})
}

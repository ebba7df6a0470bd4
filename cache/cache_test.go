package cache

import (
	"testing"

	"github.com/dexcli/dex/filesystem"
	"github.com/dexcli/dex/key"
	"github.com/dexcli/dex/mangadex"
	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.CacheTagsLifetime, 24)
}

func TestTitles(t *testing.T) {
	Convey("Given the title cache", t, func() {
		id := uuid.MustParse("32d76d19-8a05-4db0-9fc2-e0b0648fe9d0")

		Convey("Unknown ids should be absent", func() {
			So(Title(uuid.New()).IsAbsent(), ShouldBeTrue)
		})

		Convey("Stored titles should be returned", func() {
			So(SetTitle(id, "Solo Leveling"), ShouldBeNil)
			title, ok := Title(id).Get()
			So(ok, ShouldBeTrue)
			So(title, ShouldEqual, "Solo Leveling")

			Convey("And forgotten on request", func() {
				So(ForgetTitle(id), ShouldBeNil)
				So(Title(id).IsAbsent(), ShouldBeTrue)
			})
		})
	})
}

func TestTags(t *testing.T) {
	Convey("Given the tag cache", t, func() {
		tag := mangadex.Tag{
			ID:         uuid.MustParse("391b0423-d847-456f-aff0-8b0cfc03066b"),
			Type:       mangadex.TypeTag,
			Attributes: mangadex.TagAttributes{Name: mangadex.LocalizedString{"en": "Action"}, Group: "genre"},
		}

		Convey("Saved tags should load back", func() {
			So(SetTags([]mangadex.Tag{tag}), ShouldBeNil)

			tags, ok := Tags().Get()
			So(ok, ShouldBeTrue)
			So(tags, ShouldHaveLength, 1)
			So(tags[0].ID, ShouldEqual, tag.ID)
			So(tags[0].Attributes.Name["en"], ShouldEqual, "Action")
		})

		Convey("An empty list should count as a miss", func() {
			So(SetTags(nil), ShouldBeNil)
			So(Tags().IsAbsent(), ShouldBeTrue)
		})
	})
}

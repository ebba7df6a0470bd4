package config

import (
	"testing"

	"github.com/dexcli/dex/filesystem"
	"github.com/dexcli/dex/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetString(key.APIBaseURL), ShouldEqual, "https://api.mangadex.org/")
		})

		Convey("Should pick up environment overrides", func() {
			t.Setenv("DEX_SEARCH_LIMIT", "42")
			_ = Setup()
			So(viper.GetInt(key.SearchLimit), ShouldEqual, 42)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("api.rate_limit"), ShouldEqual, "api_rate_limit")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.APIRateLimit]

		Convey("Env should carry the application prefix", func() {
			So(field.Env(), ShouldEqual, "DEX_API_RATE_LIMIT")
		})

		Convey("Type name should follow the default value", func() {
			So(field.typeName(), ShouldEqual, "float")
			boolField := Default[key.AuthRemember]
			So(boolField.typeName(), ShouldEqual, "bool")
		})

		Convey("Registering a key twice should panic", func() {
			So(func() { register(key.APIRateLimit, 1.0, "") }, ShouldPanic)
		})
	})
}

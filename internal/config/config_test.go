package config_test

import (
	"errors"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/intake/internal/config"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.EventQueueSize, convey.ShouldEqual, 1024)
			convey.So(cfg.RequireTouched, convey.ShouldBeTrue)
			convey.So(cfg.NoFileLabel, convey.ShouldEqual, "No file uploaded")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given invalid settings", t, func() {
		cases := map[string]func(*config.Config){
			"blank addr":     func(c *config.Config) { c.Addr = "  " },
			"zero queue":     func(c *config.Config) { c.EventQueueSize = 0 },
			"negative queue": func(c *config.Config) { c.EventQueueSize = -1 },
			"bad format":     func(c *config.Config) { c.LogFormat = "xml" },
			"bad level":      func(c *config.Config) { c.LogLevel = "loud" },
		}

		for name, mutate := range cases {
			convey.Convey("Then "+name+" should be rejected", func() {
				cfg := config.New()
				mutate(cfg)
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})
}

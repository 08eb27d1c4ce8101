package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/neurotrack/progression/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with defaults", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 50_000)
			convey.So(cfg.ShardCount, convey.ShouldEqual, 16)
			convey.So(cfg.DefaultHorizonMonths, convey.ShouldEqual, 90)
			convey.So(cfg.DefaultIntervalMonths, convey.ShouldEqual, 6)
			convey.So(cfg.MaxHorizonMonths, convey.ShouldEqual, 240)
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
		})
	})
}

func TestConfig_LoadDefaults(t *testing.T) {
	convey.Convey("Given no file or env overrides", t, func() {
		cfg, err := config.Load(context.Background())

		convey.Convey("Then defaults carry through", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.DefaultHorizonMonths, convey.ShouldEqual, 90)
		})
	})
}

func TestConfig_LoadEnv(t *testing.T) {
	t.Setenv("PROGRESSION_ADDR", ":7070")
	t.Setenv("PROGRESSION_WORKER_COUNT", "3")
	t.Setenv("PROGRESSION_DEFAULT_HORIZON_MONTHS", "60")

	convey.Convey("Given env overrides", t, func() {
		cfg, err := config.Load(context.Background())

		convey.Convey("Then the env values win over defaults", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
			convey.So(cfg.WorkerCount, convey.ShouldEqual, 3)
			convey.So(cfg.DefaultHorizonMonths, convey.ShouldEqual, 60)
		})
	})
}

func TestConfig_LoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "addr: \":6060\"\nqueue_size: 123\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PROGRESSION_CONFIG", path)

	convey.Convey("Given a YAML config file", t, func() {
		cfg, err := config.Load(context.Background())

		convey.Convey("Then the file values override defaults", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 123)
			convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
		})
	})
}

func TestConfig_LoadFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":6060\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PROGRESSION_CONFIG", path)
	t.Setenv("PROGRESSION_ADDR", ":5050")

	convey.Convey("Given both a file and an env override", t, func() {
		cfg, err := config.Load(context.Background())

		convey.Convey("Then env wins over the file", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":5050")
		})
	})
}

func TestConfig_LoadInvalid(t *testing.T) {
	t.Setenv("PROGRESSION_DEFAULT_INTERVAL_MONTHS", "0")

	convey.Convey("Given an invalid value", t, func() {
		_, err := config.Load(context.Background())

		convey.Convey("Then Load reports it", func() {
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "default_interval_months")
		})
	})
}

func TestConfig_LoadMissingFile(t *testing.T) {
	t.Setenv("PROGRESSION_CONFIG", "/nonexistent/config.yaml")

	convey.Convey("Given a config path that does not exist", t, func() {
		_, err := config.Load(context.Background())

		convey.Convey("Then Load fails naming the file", func() {
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "/nonexistent/config.yaml")
		})
	})
}

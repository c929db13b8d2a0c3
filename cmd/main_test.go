package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/roster/internal/config"
	"github.com/okian/roster/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func testConfig() *config.Config {
	cfg := config.New()
	cfg.Addr = "127.0.0.1:0"
	return cfg
}

func TestNewService(t *testing.T) {
	convey.Convey("Given the default configuration", t, func() {
		ctx := context.Background()
		cfg := testConfig()

		convey.Convey("When building the service", func() {
			svc, err := newService(ctx, cfg, logger.Get())

			convey.Convey("Then it should serve the embedded sample roster", func() {
				convey.So(err, convey.ShouldBeNil)
				stats := svc.GetStats()
				convey.So(stats.RosterSize, convey.ShouldEqual, 17)
				convey.So(stats.GeoCities, convey.ShouldEqual, 30)
			})
		})

		convey.Convey("When roster and geo table files are configured", func() {
			dir := t.TempDir()
			cfg.RosterPath = filepath.Join(dir, "roster.yaml")
			cfg.GeoTablePath = filepath.Join(dir, "geo.yaml")
			_ = os.WriteFile(cfg.RosterPath, []byte("- id: \"1\"\n  name: Ada\n  city: Gotham\n"), 0o600)
			_ = os.WriteFile(cfg.GeoTablePath, []byte("Gotham: [40.7, -74.0]\n"), 0o600)

			svc, err := newService(ctx, cfg, logger.Get())

			convey.Convey("Then both should be used", func() {
				convey.So(err, convey.ShouldBeNil)
				stats := svc.GetStats()
				convey.So(stats.RosterSize, convey.ShouldEqual, 1)
				convey.So(stats.GeoCities, convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When the roster file is missing", func() {
			cfg.RosterPath = "/nonexistent/roster.yaml"
			_, err := newService(ctx, cfg, logger.Get())

			convey.Convey("Then building should fail", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestNewHTTPServer(t *testing.T) {
	convey.Convey("Given a configured HTTP server", t, func() {
		ctx := context.Background()
		cfg := testConfig()
		svc, err := newService(ctx, cfg, logger.Get())
		convey.So(err, convey.ShouldBeNil)

		srv := newHTTPServer(ctx, cfg, svc, logger.Get())

		convey.Convey("When logging in and reading the map", func() {
			w := httptest.NewRecorder()
			srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login",
				strings.NewReader(`{"username":"testuser","password":"Test123"}`)))

			convey.Convey("Then the routes should be wired", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(srv.ReadHeaderTimeout, convey.ShouldEqual, readHeaderTimeout)
			})
		})

		convey.Convey("When fetching the API description", func() {
			w := httptest.NewRecorder()
			srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))

			convey.Convey("Then the docs routes should be wired", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, "Roster API")
			})
		})

		convey.Convey("When scraping metrics", func() {
			w := httptest.NewRecorder()
			srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			convey.Convey("Then roster metrics should be exposed", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, "roster_directory_roster_employees")
			})
		})
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		convey.Convey("When running the server", func() {
			done := make(chan error, 1)
			go func() { done <- run(ctx, testConfig()) }()

			convey.Convey("Then it should shut down cleanly", func() {
				select {
				case err := <-done:
					convey.So(err, convey.ShouldBeNil)
				case <-time.After(5 * time.Second):
					convey.So("run did not return", convey.ShouldBeEmpty)
				}
			})
		})
	})
}

func TestMetricsUpdaters(t *testing.T) {
	convey.Convey("Given the background updaters", t, func() {
		svc, err := newService(context.Background(), testConfig(), logger.Get())
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then they should stop with their context and not panic", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
			convey.So(func() { startServiceMetricsUpdater(ctx, svc) }, convey.ShouldNotPanic)
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
			convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
		})
	})
}

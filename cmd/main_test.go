package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/okian/squadrate/internal/adapters/rowstore"
	"github.com/okian/squadrate/internal/config"
	"github.com/okian/squadrate/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init(logger.WithWriter(io.Discard))
}

func TestNewStore(t *testing.T) {
	convey.Convey("Given a loaded configuration", t, func() {
		cfg := config.New()

		convey.Convey("When the memory backend is selected", func() {
			store, memory, err := newStore(cfg, logger.Nop())

			convey.Convey("Then a memory store is returned for mounting", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(memory, convey.ShouldNotBeNil)
				convey.So(store, convey.ShouldEqual, memory)
			})
		})

		convey.Convey("When the baserow backend is selected", func() {
			cfg.StoreBackend = config.BackendBaserow
			cfg.BaserowAPIURL = "https://api.baserow.io"
			cfg.BaserowToken = "secret"
			store, memory, err := newStore(cfg, logger.Nop())

			convey.Convey("Then a Baserow client is returned", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(memory, convey.ShouldBeNil)
				_, ok := store.(*rowstore.BaserowClient)
				convey.So(ok, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the baserow URL is unusable", func() {
			cfg.StoreBackend = config.BackendBaserow
			cfg.BaserowAPIURL = "::"
			_, _, err := newStore(cfg, logger.Nop())

			convey.Convey("Then an error is returned", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestNewMux(t *testing.T) {
	convey.Convey("Given a started service on the memory backend", t, func() {
		ctx := context.Background()
		cfg := config.New()
		store, memory, err := newStore(cfg, logger.Nop())
		convey.So(err, convey.ShouldBeNil)
		svc := newService(cfg, store, logger.Nop())
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		srv := httptest.NewServer(newMux(ctx, svc, memory, "tok"))
		defer srv.Close()

		get := func(path string, header http.Header) *http.Response {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+path, http.NoBody)
			convey.So(err, convey.ShouldBeNil)
			for k, v := range header {
				req.Header[k] = v
			}
			resp, err := http.DefaultClient.Do(req)
			convey.So(err, convey.ShouldBeNil)
			_ = resp.Body.Close()
			return resp
		}

		convey.Convey("Then the API and docs routes answer", func() {
			for _, path := range []string{"/healthz", "/stats", "/api/dates", "/api/summary-all", "/api-docs", "/openapi.yaml"} {
				convey.So(get(path, nil).StatusCode, convey.ShouldEqual, http.StatusOK)
			}
			convey.So(get("/api/summary", nil).StatusCode, convey.ShouldEqual, http.StatusBadRequest)
		})

		convey.Convey("And the row endpoints are mounted behind the token", func() {
			path := "/api/database/rows/table/" + cfg.BaserowTableID + "/"
			convey.So(get(path, nil).StatusCode, convey.ShouldEqual, http.StatusUnauthorized)
			convey.So(get(path, http.Header{"Authorization": {"Token tok"}}).StatusCode, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("And a Baserow client can read through them", func() {
			memory.Append(cfg.BaserowTableID, rowstore.RawRow{"player": "Иван"})
			client, err := rowstore.NewBaserowClient(srv.URL, "tok")
			convey.So(err, convey.ShouldBeNil)

			rows, err := rowstore.FetchAll(ctx, client, cfg.BaserowTableID)
			convey.So(err, convey.ShouldBeNil)
			convey.So(len(rows), convey.ShouldEqual, 1)
			convey.So(rows[0]["player"], convey.ShouldEqual, "Иван")
		})
	})
}

func TestSystemMetricsUpdater(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("When it runs until its context expires", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			convey.Convey("Then it returns without panicking", func() {
				convey.So(func() { startSystemMetricsUpdater(ctx, 10*time.Millisecond) }, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When updating once", func() {
			convey.Convey("Then it does not panic", func() {
				convey.So(updateSystemMetrics, convey.ShouldNotPanic)
			})
		})
	})
}

func TestConfigFromEnvironment(t *testing.T) {
	convey.Convey("Given environment overrides", t, func() {
		_ = os.Setenv("SQUADRATE_ADDR", ":8080")
		_ = os.Setenv("SQUADRATE_SUBMIT_BATCH_SIZE", "4")
		defer func() {
			_ = os.Unsetenv("SQUADRATE_ADDR")
			_ = os.Unsetenv("SQUADRATE_SUBMIT_BATCH_SIZE")
		}()

		convey.Convey("When building the service from them", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			store, _, err := newStore(cfg, logger.Nop())
			convey.So(err, convey.ShouldBeNil)
			svc := newService(cfg, store, logger.Nop())

			convey.Convey("Then the overrides are applied", func() {
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.SubmitBatchSize, convey.ShouldEqual, 4)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})
	})
}

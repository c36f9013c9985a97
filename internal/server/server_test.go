// SPDX-License-Identifier: MIT

package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/spatialacc/internal/config"
	"github.com/katalvlaran/spatialacc/internal/logging"
	"github.com/katalvlaran/spatialacc/internal/server"
	"github.com/katalvlaran/spatialacc/od"
)

func baseConfig() *config.Config {
	return &config.Config{
		Model:     "Gravity",
		Beta:      1,
		Threshold: 5000,
		Expon:     0.8,
		DDOF:      1,
		Undefined: "propagate",
		Log:       config.LogConfig{Level: "info"},
		Server: config.ServerConfig{
			Addr:       ":0",
			CacheTTL:   time.Minute,
			MaxRecords: 100,
		},
	}
}

func records() []od.Record {
	return []od.Record{
		{Origin: "1", Destination: "a", TravelCost: 1, Demand: 100, Supply: 10},
		{Origin: "1", Destination: "b", TravelCost: 3, Demand: 100, Supply: 5},
		{Origin: "2", Destination: "a", TravelCost: 2, Demand: 50, Supply: 10},
		{Origin: "2", Destination: "b", TravelCost: 4, Demand: 50, Supply: 5},
	}
}

type scoreBody struct {
	Origin  string   `json:"origin"`
	Value   *float64 `json:"value"`
	Defined bool     `json:"defined"`
}

type computeBody struct {
	Model   string      `json:"model"`
	Scores  []scoreBody `json:"scores"`
	Summary struct {
		Count int      `json:"count"`
		Mean  *float64 `json:"mean"`
		Std   *float64 `json:"std"`
	} `json:"summary"`
}

func post(h http.Handler, body any) *httptest.ResponseRecorder {
	b, err := json.Marshal(body)
	Expect(err).NotTo(HaveOccurred())
	req := httptest.NewRequest(http.MethodPost, "/v1/accessibility", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	return w
}

func errorOf(w *httptest.ResponseRecorder) server.ErrorBody {
	var e server.ErrorBody
	Expect(json.Unmarshal(w.Body.Bytes(), &e)).To(Succeed())

	return e
}

var _ = Describe("Server", func() {
	var (
		cfg *config.Config
		reg *prometheus.Registry
		srv *server.Server
	)

	BeforeEach(func() {
		cfg = baseConfig()
		reg = prometheus.NewRegistry()
	})

	JustBeforeEach(func() {
		srv = server.New(cfg, logging.NewTestLogger(GinkgoWriter), reg)
	})

	Describe("GET /healthz", func() {
		It("reports ok with a request id", func() {
			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`{"status":"ok"}`))
			Expect(w.Header().Get(server.HeaderRequestID)).NotTo(BeEmpty())
		})

		It("echoes a caller request id", func() {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			req.Header.Set(server.HeaderRequestID, "abc-123")
			srv.Handler().ServeHTTP(w, req)
			Expect(w.Header().Get(server.HeaderRequestID)).To(Equal("abc-123"))
		})
	})

	Describe("POST /v1/accessibility", func() {
		It("scores every origin in sort order", func() {
			w := post(srv.Handler(), server.ComputeRequest{Records: records()})
			Expect(w.Code).To(Equal(http.StatusOK))

			var body computeBody
			Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Model).To(Equal("Gravity"))
			Expect(body.Scores).To(HaveLen(2))
			Expect(body.Scores[0].Origin).To(Equal("1"))
			Expect(body.Scores[1].Origin).To(Equal("2"))
			Expect(body.Summary.Count).To(Equal(2))
			Expect(*body.Summary.Mean).To(BeNumerically("~", 0.092, 1e-9))
		})

		It("applies request parameters over the configuration", func() {
			model, threshold := "2SFCA", 2.5
			w := post(srv.Handler(), server.ComputeRequest{Records: records(), Model: &model, Threshold: &threshold})
			Expect(w.Code).To(Equal(http.StatusOK))

			var body computeBody
			Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Model).To(Equal("2SFCA"))
		})

		It("serves repeated bodies from the cache", func() {
			first := post(srv.Handler(), server.ComputeRequest{Records: records()})
			Expect(first.Header().Get(server.HeaderCache)).To(Equal("MISS"))
			second := post(srv.Handler(), server.ComputeRequest{Records: records()})
			Expect(second.Header().Get(server.HeaderCache)).To(Equal("HIT"))
			Expect(second.Body.String()).To(Equal(first.Body.String()))
			Expect(srv.Cache().Len()).To(Equal(1))
		})

		It("rejects incomplete tables as invalid input", func() {
			w := post(srv.Handler(), server.ComputeRequest{Records: records()[:3]})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			e := errorOf(w)
			Expect(e.Code).To(Equal("invalid_argument"))
			Expect(e.Message).To(ContainSubstring("incomplete OD matrix"))
			Expect(e.RequestID).NotTo(BeEmpty())
		})

		It("rejects malformed JSON", func() {
			req := httptest.NewRequest(http.MethodPost, "/v1/accessibility", bytes.NewBufferString("{"))
			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects zero total demand", func() {
			recs := records()
			for i := range recs {
				recs[i].Demand = 0
			}
			w := post(srv.Handler(), server.ComputeRequest{Records: recs})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(errorOf(w).Message).To(ContainSubstring("total demand is zero"))
		})

		It("reports undefined weights as a failed precondition under the fail policy", func() {
			recs := records()
			recs[0].TravelCost = 0
			policy := "fail"
			w := post(srv.Handler(), server.ComputeRequest{Records: recs, Undefined: &policy})
			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
			Expect(errorOf(w).Code).To(Equal("failed_precondition"))
		})

		It("renders undefined scores as null under the default policy", func() {
			recs := records()
			recs[0].TravelCost = 0
			w := post(srv.Handler(), server.ComputeRequest{Records: recs})
			Expect(w.Code).To(Equal(http.StatusOK))

			var body computeBody
			Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Scores[0].Value).To(BeNil())
			Expect(body.Scores[0].Defined).To(BeFalse())
			Expect(body.Summary.Count).To(Equal(1))
		})

		It("rejects an unknown policy", func() {
			policy := "skip"
			w := post(srv.Handler(), server.ComputeRequest{Records: records(), Undefined: &policy})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		Context("with strict model names", func() {
			BeforeEach(func() { cfg.StrictModel = true })

			It("rejects unknown models", func() {
				model := "Foo"
				w := post(srv.Handler(), server.ComputeRequest{Records: records(), Model: &model})
				Expect(w.Code).To(Equal(http.StatusBadRequest))
				Expect(errorOf(w).Message).To(ContainSubstring("unknown model"))
			})
		})

		Context("without strict model names", func() {
			It("falls back to Exponential", func() {
				model := "Foo"
				w := post(srv.Handler(), server.ComputeRequest{Records: records(), Model: &model})
				Expect(w.Code).To(Equal(http.StatusOK))
				var body computeBody
				Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
				Expect(body.Model).To(Equal("Exponential"))
			})
		})

		Context("with a record limit", func() {
			BeforeEach(func() { cfg.Server.MaxRecords = 3 })

			It("returns 413", func() {
				w := post(srv.Handler(), server.ComputeRequest{Records: records()})
				Expect(w.Code).To(Equal(http.StatusRequestEntityTooLarge))
				Expect(errorOf(w).Code).To(Equal("resource_exhausted"))
			})

			It("returns 413 for an oversized body before decoding it", func() {
				big := records()[:1]
				big[0].Origin = od.ID(strings.Repeat("x", 16<<10))
				w := post(srv.Handler(), server.ComputeRequest{Records: big})
				Expect(w.Code).To(Equal(http.StatusRequestEntityTooLarge))
				Expect(errorOf(w).Message).To(ContainSubstring("body exceeds"))
			})
		})

		Context("with a sparse table", func() {
			BeforeEach(func() { cfg.Server.MaxRecords = 20_000 })

			It("rejects it as incomplete without building the grid", func() {
				sparse := make([]od.Record, 20_000)
				for k := range sparse {
					sparse[k] = od.Record{
						Origin:      od.ID(fmt.Sprintf("o%d", k)),
						Destination: od.ID(fmt.Sprintf("d%d", k)),
						TravelCost:  1, Demand: 1, Supply: 1,
					}
				}
				w := post(srv.Handler(), server.ComputeRequest{Records: sparse})
				Expect(w.Code).To(Equal(http.StatusBadRequest))
				Expect(errorOf(w).Message).To(ContainSubstring("missing pair"))
			})
		})

		Context("with a rate limit", func() {
			BeforeEach(func() {
				cfg.Server.RateLimit = 0.001
				cfg.Server.Burst = 1
			})

			It("returns 429 once the bucket is empty", func() {
				Expect(post(srv.Handler(), server.ComputeRequest{Records: records()}).Code).To(Equal(http.StatusOK))
				w := post(srv.Handler(), server.ComputeRequest{Records: records()})
				Expect(w.Code).To(Equal(http.StatusTooManyRequests))
				Expect(errorOf(w).Code).To(Equal("resource_exhausted"))
			})
		})
	})

	Describe("GET /metrics", func() {
		It("exports request and cache counters", func() {
			post(srv.Handler(), server.ComputeRequest{Records: records()})
			post(srv.Handler(), server.ComputeRequest{Records: records()})
			post(srv.Handler(), server.ComputeRequest{Records: records()[:3]})

			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`spatialacc_requests_total{code="200"} 2`))
			Expect(w.Body.String()).To(ContainSubstring(`spatialacc_requests_total{code="400"} 1`))
			Expect(w.Body.String()).To(ContainSubstring("spatialacc_cache_hits_total 1"))
			Expect(w.Body.String()).To(ContainSubstring("spatialacc_compute_seconds_count"))
		})
	})
})

// SPDX-License-Identifier: MIT

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/spatialacc/accessibility"
	"github.com/katalvlaran/spatialacc/decay"
	"github.com/katalvlaran/spatialacc/od"
)

// HeaderCache reports HIT or MISS for /v1/accessibility.
const HeaderCache = "X-Cache"

// ComputeRequest is the body of POST /v1/accessibility. Unset parameters
// take the server configuration.
type ComputeRequest struct {
	Records   []od.Record `json:"records"`
	Model     *string     `json:"model,omitempty"`
	Beta      *float64    `json:"beta,omitempty"`
	Threshold *float64    `json:"threshold,omitempty"`
	Expon     *float64    `json:"expon,omitempty"`
	DDOF      *int        `json:"ddof,omitempty"`
	Undefined *string     `json:"undefined,omitempty"`
}

// Body size allowance per record and for the envelope around the records.
// A record with short IDs encodes to well under recordBytes.
const (
	recordBytes = 512
	bodySlack   = 4 << 10
)

// maxBodyBytes bounds the request body for a record limit; 0 means none.
func maxBodyBytes(maxRecords int) int64 {
	if maxRecords <= 0 {
		return 0
	}

	return int64(maxRecords)*recordBytes + bodySlack
}

func (s *Server) handleCompute(c *gin.Context) {
	if n := maxBodyBytes(s.cfg.Server.MaxRecords); n > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			s.fail(c, fmt.Errorf("body exceeds %d bytes: %w", tooBig.Limit, errTooLarge))
			return
		}
		s.fail(c, fmt.Errorf("read body: %v: %w", err, errBadRequest))
		return
	}

	key := Key(body)
	if cached, ok := s.cache.Get(key); ok {
		s.metrics.CacheHits.Inc()
		c.Header(HeaderCache, "HIT")
		s.respond(c, http.StatusOK, cached)
		return
	}

	var req ComputeRequest
	if err = json.Unmarshal(body, &req); err != nil {
		s.fail(c, fmt.Errorf("decode body: %v: %w", err, errBadRequest))
		return
	}
	if limit := s.cfg.Server.MaxRecords; limit > 0 && len(req.Records) > limit {
		s.fail(c, fmt.Errorf("%d records exceed limit %d: %w", len(req.Records), limit, errTooLarge))
		return
	}

	opts, err := s.options(&req)
	if err != nil {
		s.fail(c, err)
		return
	}

	start := time.Now()
	res, err := accessibility.Compute(req.Records, opts...)
	s.metrics.ComputeSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		s.fail(c, err)
		return
	}
	s.metrics.Records.Observe(float64(len(req.Records)))

	out, err := json.Marshal(res)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.cache.Set(key, out)
	c.Header(HeaderCache, "MISS")
	s.respond(c, http.StatusOK, out)
}

// options overlays request parameters on the configured defaults.
func (s *Server) options(req *ComputeRequest) ([]accessibility.Option, error) {
	cfg := s.cfg
	if req.Model != nil {
		cfg.Model = *req.Model
	}
	if req.Beta != nil {
		cfg.Beta = *req.Beta
	}
	if req.Threshold != nil {
		cfg.Threshold = *req.Threshold
	}
	if req.Expon != nil {
		cfg.Expon = *req.Expon
	}
	if req.DDOF != nil {
		cfg.DDOF = *req.DDOF
	}
	if req.Undefined != nil {
		cfg.Undefined = *req.Undefined
	}
	if cfg.StrictModel {
		if _, err := decay.ParseModelStrict(cfg.Model); err != nil {
			return nil, err
		}
	}
	if _, err := accessibility.ParseUndefinedPolicy(cfg.Undefined); err != nil {
		return nil, err
	}
	cfg.Verbose = false

	return cfg.AccessibilityOptions(s.logger), nil
}

func (s *Server) respond(c *gin.Context, status int, body []byte) {
	s.metrics.Requests.WithLabelValues(strconv.Itoa(status)).Inc()
	c.Data(status, "application/json; charset=utf-8", body)
}

// fail writes the error envelope and aborts the chain.
func (s *Server) fail(c *gin.Context, err error) {
	b, status := apiError(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(err, "Request failed", "requestID", c.GetString(ctxRequestID))
	}
	s.metrics.Requests.WithLabelValues(strconv.Itoa(status)).Inc()
	c.AbortWithStatusJSON(status, ErrorBody{
		Code:      codeName(b),
		Message:   b.Msg,
		RequestID: c.GetString(ctxRequestID),
	})
}

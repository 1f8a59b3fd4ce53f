package server

import (
	"fmt"
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sanyamj894/ward-wise-insights-dash/pkg/accuracy"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/analytics"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/ingest"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/optimize"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/outlier"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/validation"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/ward"
)

// maxUploadBytes bounds multipart uploads to /api/ingest.
const maxUploadBytes = 32 << 20

// maxBatchScenarios bounds the scenarios accepted by one batch request.
const maxBatchScenarios = 64

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(`<!DOCTYPE html>
<html><head><title>Wardcast</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>Wardcast</h1>
<p>Ward forecasting engine. POST a scenario to <code>/predict</code>.</p>
</div>
</body></html>`))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "records": len(s.history)})
}

func (s *Server) handleWards(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"wards": ward.Wards(s.history), "records": len(s.history)})
}

func (s *Server) handleDataset(c *gin.Context) {
	c.JSON(http.StatusOK, s.history)
}

// handlePredict accepts a JSON scenario and returns the forecast array.
func (s *Server) handlePredict(c *gin.Context) {
	var sc ward.Scenario
	if err := c.ShouldBindJSON(&sc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scenario: " + err.Error()})
		return
	}
	if report := validation.ValidateScenario(sc); !report.Valid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid scenario", "validation": report})
		return
	}

	predicted := s.forecaster.Forecast(s.history, sc)
	s.logger.Debug("forecast",
		zap.Int("year", sc.Year),
		zap.Int("wards", len(predicted)),
		zap.String("request_id", c.GetString("request_id")))
	c.JSON(http.StatusOK, predicted)
}

type analyzeRequest struct {
	Scenario           ward.Scenario `json:"scenario"`
	Metric             string        `json:"metric"`
	HappinessThreshold *float64      `json:"happiness_threshold"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}

	opts := s.opts.Analysis
	if req.Metric != "" {
		m, err := ward.ParseMetric(req.Metric)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		opts.Metric = m
	}
	if req.HappinessThreshold != nil {
		opts.HappinessThreshold = *req.HappinessThreshold
	}

	res, report := analytics.Analyze(s.forecaster, s.history, req.Scenario, opts)
	if !report.Valid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid scenario", "validation": report})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": res, "validation": report})
}

type batchRequest struct {
	Scenarios []ward.Scenario `json:"scenarios"`
}

func (s *Server) handleBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	if len(req.Scenarios) > maxBatchScenarios {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("too many scenarios: %d, at most %d per request", len(req.Scenarios), maxBatchScenarios),
		})
		return
	}
	for i, sc := range req.Scenarios {
		if report := validation.ValidateScenario(sc); !report.Valid {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid scenario", "index": i, "validation": report})
			return
		}
	}

	results, err := analytics.ForecastScenarios(c.Request.Context(), s.forecaster, s.history, req.Scenarios, runtime.GOMAXPROCS(0))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"forecasts": results})
}

type evaluateRequest struct {
	Actual    []ward.Record `json:"actual"`
	Predicted []ward.Record `json:"predicted"`
	Metric    string        `json:"metric"`
}

func (s *Server) handleEvaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	metric, ok := s.metric(c, req.Metric)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, accuracy.Evaluate(req.Actual, req.Predicted, metric))
}

type outliersRequest struct {
	Records []ward.Record `json:"records"`
	Metric  string        `json:"metric"`
}

func (s *Server) handleOutliers(c *gin.Context) {
	var req outliersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	metric, ok := s.metric(c, req.Metric)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, outlier.Analyze(req.Records, metric))
}

type optimizeRequest struct {
	Records []ward.Record `json:"records"`
}

func (s *Server) handleOptimize(c *gin.Context) {
	var req optimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	profile := optimize.Recommend(req.Records)
	c.JSON(http.StatusOK, gin.H{"profile": profile, "mix": optimize.Mix(profile)})
}

// handleIngest parses an uploaded dataset and returns it with a validation
// report. Nothing is retained.
func (s *Server) handleIngest(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file: " + err.Error()})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	records, err := ingest.Parse(fh.Filename, f)
	if err != nil {
		s.logger.Warn("ingest failed", zap.String("file", fh.Filename), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records, "validation": validation.ValidateRecords(records)})
}

// metric resolves a requested metric name, defaulting to the configured one.
// It writes a 400 response and returns false for unknown names.
func (s *Server) metric(c *gin.Context, name string) (ward.Metric, bool) {
	if name == "" {
		if s.opts.Analysis.Metric != "" {
			return s.opts.Analysis.Metric, true
		}
		return ward.MetricHappinessIndex, true
	}
	m, err := ward.ParseMetric(name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return m, true
}

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferedLogger(t *testing.T) (*logrus.Logger, *bytes.Buffer) {
	t.Helper()
	logger, err := SetupLogging("debug")
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	logger.SetOutput(buf)
	return logger, buf
}

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var lines []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]interface{}{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		lines = append(lines, entry)
	}
	return lines
}

func TestSetupLogging(t *testing.T) {
	logger, err := SetupLogging("warn")
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, logger.Level)

	logger, err = SetupLogging("")
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, logger.Level)

	_, err = SetupLogging("loud")
	assert.Error(t, err)
}

func TestSetupLogging_LevelFieldKey(t *testing.T) {
	logger, buf := bufferedLogger(t)

	logger.Info("hello")

	lines := logLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "info", lines[0]["loglevel"])
	assert.Equal(t, "hello", lines[0]["msg"])
}

func TestLogData(t *testing.T) {
	logger, buf := bufferedLogger(t)
	logData := NewLogData(logger)

	logData.AddData("accountID", "100")
	logData.AddTiming("depositMs")()
	logData.AddToExistingTiming("queryMs")()
	logData.AddToExistingTiming("queryMs")()
	logData.Log().Info("done")

	lines := logLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "100", lines[0]["accountID"])
	assert.Contains(t, lines[0], "depositMs")
	assert.Contains(t, lines[0], "queryMs")
}

func TestGetLogData(t *testing.T) {
	assert.Nil(t, GetLogData(context.Background()))

	logData := NewLogData(logrus.New())
	ctx := WithLogData(context.Background(), logData)
	assert.Same(t, logData, GetLogData(ctx))
}

func TestLoggingWrapper(t *testing.T) {
	logger, buf := bufferedLogger(t)

	var seen *LogData
	handler := LoggingWrapper("Status", logger, func(w http.ResponseWriter, req *http.Request, logData *LogData) error {
		seen = GetLogData(req.Context())
		assert.Same(t, logData, seen)
		w.WriteHeader(http.StatusOK)
		return nil
	})

	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/status", nil))
	first := seen
	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.NotSame(t, first, seen)
	lines := logLines(t, buf)
	require.Len(t, lines, 4)
	assert.Equal(t, "Handler.Status.Start", lines[0]["msg"])
	assert.Equal(t, "Handler.Status.Complete", lines[1]["msg"])
	assert.Contains(t, lines[1], "duration")
}

func TestLoggingWrapper_Error(t *testing.T) {
	logger, buf := bufferedLogger(t)

	handler := LoggingWrapper("Status", logger, func(w http.ResponseWriter, _ *http.Request, _ *LogData) error {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	})
	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/status", nil))

	lines := logLines(t, buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "Handler.Status.Error", lines[1]["msg"])
	assert.Equal(t, "error", lines[1]["loglevel"])
}

type pingOutput struct {
	Body struct {
		Seen bool `json:"seen"`
	}
}

func TestHumaMiddleware(t *testing.T) {
	logger, buf := bufferedLogger(t)

	_, api := humatest.New(t)
	api.UseMiddleware(HumaMiddleware(logger))
	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
	}, func(ctx context.Context, _ *struct{}) (*pingOutput, error) {
		logData := GetLogData(ctx)
		out := &pingOutput{}
		out.Body.Seen = logData != nil
		if logData != nil {
			logData.AddData("pinged", true)
		}
		return out, nil
	})

	resp := api.Get("/ping")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"seen":true`)

	var messages []string
	for _, line := range logLines(t, buf) {
		messages = append(messages, line["msg"].(string))
		if line["msg"] == "Handler.ping.Complete" {
			assert.Equal(t, true, line["pinged"])
			assert.Equal(t, float64(http.StatusOK), line["status"])
		}
	}
	assert.Contains(t, messages, "Handler.ping.Start")
	assert.Contains(t, messages, "Handler.ping.Complete")
}

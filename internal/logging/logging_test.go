package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/triviaz/internal/llm"
)

func TestNew_JSONToFallback(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Options{Level: "debug", Format: "json", Fallback: &buf})
	require.NoError(t, err)
	defer closer.Close()

	logger.WithField("topic", "rivers").Debug("generating")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "generating", entry["msg"])
	assert.Equal(t, "rivers", entry["topic"])
	assert.Equal(t, "debug", entry["level"])
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "triviaz.log")
	logger, closer, err := New(Options{File: path})
	require.NoError(t, err)

	logger.Info("hello")
	logger.Debug("hidden at info level")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello")
	assert.NotContains(t, string(data), "hidden")
}

func TestNew_Errors(t *testing.T) {
	_, _, err := New(Options{Level: "loud"})
	assert.Error(t, err)

	_, _, err = New(Options{Format: "xml"})
	assert.Error(t, err)
}

func TestNew_DefaultsDiscard(t *testing.T) {
	logger, _, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.NotNil(t, logger.Out)
}

func TestWithContext(t *testing.T) {
	logger, hook := test.NewNullLogger()
	SetDefault(logger)
	t.Cleanup(func() { SetDefault(nil) })

	ctx := WithRunID(context.Background(), "run-1")
	ctx = llm.WithPurpose(ctx, "quiz-gen")
	WithContext(ctx).Info("batch applied")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "run-1", entry.Data["run_id"])
	assert.Equal(t, "quiz-gen", entry.Data["purpose"])

	WithContext(context.Background()).Info("plain")
	assert.Empty(t, hook.LastEntry().Data)
	assert.True(t, strings.HasPrefix(hook.LastEntry().Message, "plain"))
}

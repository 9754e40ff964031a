package cosmic_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/cosmic/pkg/cosmic"
)

type recordingLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *recordingLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, level+":"+msg)
}

func (l *recordingLogger) Debug(msg string, _ map[string]interface{}) { l.add("debug", msg) }
func (l *recordingLogger) Info(msg string, _ map[string]interface{})  { l.add("info", msg) }
func (l *recordingLogger) Warn(msg string, _ map[string]interface{})  { l.add("warn", msg) }
func (l *recordingLogger) Error(msg string, _ map[string]interface{}) { l.add("error", msg) }

func TestInterceptorChain_Order(t *testing.T) {
	t.Parallel()

	var order []string

	chain := cosmic.NewInterceptorChain().
		AddRequestInterceptor(func(_ context.Context, _ *cosmic.Request) error {
			order = append(order, "first")

			return nil
		}).
		AddRequestInterceptor(func(_ context.Context, _ *cosmic.Request) error {
			order = append(order, "second")

			return nil
		})

	require.NoError(t, chain.ExecuteRequestInterceptors(context.Background(), &cosmic.Request{}))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestInterceptorChain_StopsOnError(t *testing.T) {
	t.Parallel()

	errStop := errors.New("stop")
	called := false

	chain := cosmic.NewInterceptorChain().
		AddRequestInterceptor(func(_ context.Context, _ *cosmic.Request) error { return errStop }).
		AddRequestInterceptor(func(_ context.Context, _ *cosmic.Request) error {
			called = true

			return nil
		})

	err := chain.ExecuteRequestInterceptors(context.Background(), &cosmic.Request{})
	require.ErrorIs(t, err, errStop)
	assert.False(t, called)
}

func TestInterceptorChain_NilIsNoop(t *testing.T) {
	t.Parallel()

	var chain *cosmic.InterceptorChain

	require.NoError(t, chain.ExecuteRequestInterceptors(context.Background(), &cosmic.Request{}))
	require.NoError(t, chain.ExecuteResponseInterceptors(context.Background(), &cosmic.Request{}, &cosmic.Response{}))
}

func TestHeaderInterceptor(t *testing.T) {
	t.Parallel()

	req := &cosmic.Request{}

	err := cosmic.HeaderInterceptor(map[string]string{"X-Trace": "abc"})(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "abc", req.Headers.Get("X-Trace"))
}

func TestLoggingInterceptors(t *testing.T) {
	t.Parallel()

	logger := &recordingLogger{}
	req := &cosmic.Request{Operation: "find", Method: http.MethodGet}

	require.NoError(t, cosmic.LoggingInterceptor(logger)(context.Background(), req))
	require.NoError(t, cosmic.LoggingResponseInterceptor(logger)(context.Background(), req, &cosmic.Response{StatusCode: 200}))
	require.NoError(t, cosmic.LoggingResponseInterceptor(logger)(context.Background(), req, &cosmic.Response{
		StatusCode: 500,
		Error:      errors.New("boom"),
	}))

	assert.Equal(t, []string{"debug:API Request", "debug:API Response", "error:API Response Error"}, logger.entries)
}

func TestMetricsCollector(t *testing.T) {
	t.Parallel()

	collector := cosmic.NewMetricsCollector()
	chain := collector.Install(cosmic.NewInterceptorChain())

	var (
		mu      sync.Mutex
		changes []string
	)

	collector.SetOnChange(func(operation string, _ cosmic.Metrics) {
		mu.Lock()
		defer mu.Unlock()

		changes = append(changes, operation)
	})

	ctx := context.Background()

	for _, status := range []int{200, 404} {
		req := &cosmic.Request{Operation: "findOne", Method: http.MethodGet}

		require.NoError(t, chain.ExecuteRequestInterceptors(ctx, req))
		require.NoError(t, chain.ExecuteResponseInterceptors(ctx, req, &cosmic.Response{StatusCode: status}))
	}

	metrics, ok := collector.GetMetrics("findOne")
	require.True(t, ok)
	assert.Equal(t, int64(2), metrics.TotalRequests)
	assert.Equal(t, int64(1), metrics.TotalErrors)
	assert.False(t, metrics.LastRequestTime.IsZero())

	_, ok = collector.GetMetrics("find")
	assert.False(t, ok)

	mu.Lock()
	defer mu.Unlock()

	assert.Equal(t, []string{"findOne", "findOne"}, changes)
}

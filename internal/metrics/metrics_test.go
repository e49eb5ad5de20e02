package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {

	m := New()
	registry := prometheus.NewRegistry()
	require.NoError(t, m.Register(registry))

	m.Swap("setosa|virginica", "sepal")
	m.Tick("setosa|virginica", "sepal", 0.7, 0)
	m.Tick("setosa|virginica", "sepal", 0.6, 1)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.prometheus.Ticks.WithLabelValues("setosa|virginica", "sepal")))
	assert.Equal(t, 0.6, testutil.ToFloat64(m.prometheus.Loss.WithLabelValues("setosa|virginica", "sepal")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.prometheus.Generations.WithLabelValues("setosa|virginica", "sepal")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.prometheus.Swaps.WithLabelValues("setosa|virginica", "sepal")))

	// registering twice fails
	assert.Error(t, m.Register(registry))
}

package profiling_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZinnunMalikov/clipsmart-main/internal/logger"
	"github.com/ZinnunMalikov/clipsmart-main/internal/profiling"
)

func TestStartPyroscope_DisabledByDefault(t *testing.T) {
	t.Setenv("ENABLE_CONTINUOUS_PROFILING", "")

	p, err := profiling.StartPyroscope("httpd", "test", logger.NewNop())
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, p.Stop())
}

func TestStartPprofServer_DisabledIsNoop(t *testing.T) {
	t.Setenv("ENABLE_PROFILING", "false")
	profiling.StartPprofServer(logger.NewNop())
}

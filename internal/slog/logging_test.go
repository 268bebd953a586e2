package slog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	const (
		topInfo    = `level=INFO msg="top-level info"`
		topDebug   = `level=DEBUG msg="top-level debug"`
		topError   = `level=ERROR msg="top-level error"`
		congInfo   = `level=INFO component=congestion msg="congestion info"`
		congDebug  = `level=DEBUG component=congestion msg="congestion debug"`
		congError  = `level=ERROR component=congestion msg="congestion error"`
		dctcpInfo  = `level=INFO component=dctcp msg="dctcp info"`
		dctcpDebug = `level=DEBUG component=dctcp msg="dctcp debug"`
		dctcpError = `level=ERROR component=dctcp msg="dctcp error"`
	)

	testCases := []struct {
		name     string
		env      string
		expected []string
	}{
		{
			name:     "no env set",
			env:      "",
			expected: nil,
		},
		{
			name:     "info level",
			env:      "info",
			expected: []string{topInfo, topError, congInfo, congError, dctcpInfo, dctcpError},
		},
		{
			name:     "debug level",
			env:      "debug",
			expected: []string{topInfo, topDebug, topError, congInfo, congDebug, congError, dctcpInfo, dctcpDebug, dctcpError},
		},
		{
			name:     "error level",
			env:      "error",
			expected: []string{topError, congError, dctcpError},
		},
		{
			name:     "top-level debug, congestion error only",
			env:      "debug,congestion=error",
			expected: []string{topInfo, topDebug, topError, congError, dctcpInfo, dctcpDebug, dctcpError},
		},
		{
			name:     "top-level error, congestion debug",
			env:      "error,congestion=debug",
			expected: []string{topError, congInfo, congDebug, congError, dctcpError},
		},
		{
			name:     "different levels for each component",
			env:      "info,congestion=debug,dctcp=error",
			expected: []string{topInfo, topError, congInfo, congDebug, congError, dctcpError},
		},
		{
			name:     "no top-level, only components specified",
			env:      "congestion=info,dctcp=debug",
			expected: []string{congInfo, congError, dctcpInfo, dctcpDebug, dctcpError},
		},
		{
			name:     "none disables all logging",
			env:      "none",
			expected: nil,
		},
		{
			name:     "top-level debug, congestion none",
			env:      "debug,congestion=none",
			expected: []string{topInfo, topDebug, topError, dctcpInfo, dctcpDebug, dctcpError},
		},
		{
			name:     "top-level info, all components none",
			env:      "info,congestion=none,dctcp=none",
			expected: []string{topInfo, topError},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("TCPBBR_LOG_LEVEL", tc.env)
			b := &bytes.Buffer{}
			logger := NewLogger(b)

			logger.Info("top-level info")
			logger.Debug("top-level debug")
			logger.Error("top-level error")

			congLogger := logger.With(ComponentKey, "congestion")
			congLogger.Info("congestion info")
			congLogger.Debug("congestion debug")
			congLogger.Error("congestion error")

			dctcpLogger := logger.With(ComponentKey, "dctcp")
			dctcpLogger.Info("dctcp info")
			dctcpLogger.Debug("dctcp debug")
			dctcpLogger.Error("dctcp error")

			var suffixes []string
			if s := strings.TrimSuffix(b.String(), "\n"); s != "" {
				for _, line := range strings.Split(s, "\n") {
					// Strip the "time=..." prefix, keep everything after the first space
					require.Equal(t, "time=", line[:5])
					if idx := strings.Index(line, " "); idx != -1 {
						suffixes = append(suffixes, line[idx+1:])
					}
				}
			}
			require.Equal(t, tc.expected, suffixes)
		})
	}
}

func TestParseLogConfigErrors(t *testing.T) {
	_, err := parseLogConfig("verbose")
	require.ErrorContains(t, err, "unknown log level")

	_, err = parseLogConfig("info,congestion=loud")
	require.ErrorContains(t, err, "component congestion")
}

package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/Sirupsen/logrus.v0"
)

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(&buf, logrus.InfoLevel)

	l.Debugf("hidden %d", 1)
	assert.Zero(t, buf.Len())

	l.Infof("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	l := WithFields(NewWithOutput(&buf, logrus.DebugLevel), Fields{"mod": "cpu"})
	l.Warnf("halt")

	assert.Contains(t, buf.String(), "mod=cpu")
	assert.Contains(t, buf.String(), "halt")
}

func TestNewLevel(t *testing.T) {
	_, err := NewLevel("nope")
	require.Error(t, err)

	l, err := NewLevel("debug")
	require.NoError(t, err)
	assert.NotNil(t, l)
}

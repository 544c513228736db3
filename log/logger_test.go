package log

import (
	"testing"

	"github.com/stretchr/testify/assert"

	logcomm "github.com/FluidWallet/fluid/log/common"
)

func TestCreateMainLogger(t *testing.T) {
	i := 100
	str := "TestCreate"
	log, err := CreateMainLogger(logcomm.DebugLevel, JSONFormat, StdErrOutput, "")
	assert.Equal(t, err, nil)
	log.Debug("TestCreateMainLogger ok")
	log.Info("TestCreateMainLogger ok")
	log.Infof("TestCreateMainLogger ok i=%d, str=%s", i, str)

	log.UpdateLoggerLevel(logcomm.InfoLevel)

	log.Debug("TestCreateMainLogger ok after update")
	log.Info("TestCreateMainLogger ok after update")
}

func TestCreateModuleLogger(t *testing.T) {
	log, err := CreateMainLogger(logcomm.DebugLevel, JSONFormat, StdErrOutput, "")
	assert.Equal(t, err, nil)
	log.Debug("MainLogger ok")
	log.Info("MainLogger ok")

	ml := CreateModuleLogger(logcomm.InfoLevel, "session", log)

	ml.Debug("session logger ok after update")
	ml.Info("session logger ok after update")
}

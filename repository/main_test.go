package repository

import (
	"os"
	"testing"

	"alumni-gateway/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

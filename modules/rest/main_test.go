package rest

import (
	"os"
	"testing"

	"github.com/lordralex/ballot/api/env"
)

func TestMain(m *testing.M) {
	env.Set("log.file", "-")
	os.Exit(m.Run())
}

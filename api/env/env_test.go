package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReadsEnvironment(t *testing.T) {
	t.Setenv("BALLOT_TEST_VALUE", "hello")

	assert.Equal(t, "hello", Get("ballot.test.value"))
	assert.Equal(t, "fallback", GetOr("ballot.test.missing", "fallback"))
}

func TestGetReadsSecretFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(file, []byte("  secret-token \n"), 0600))
	t.Setenv("BALLOT_TEST_SECRET_FILE", file)
	defer Unset("ballot.test.secret")

	assert.Equal(t, "secret-token", Get("ballot.test.secret"))

	//cached after the first read
	require.NoError(t, os.Remove(file))
	assert.Equal(t, "secret-token", Get("ballot.test.secret"))
}

func TestTypedGetters(t *testing.T) {
	Set("ballot.test.bool", "true")
	Set("ballot.test.int", "42")
	Set("ballot.test.duration", "15s")
	Set("ballot.test.seconds", "3")
	Set("ballot.test.list", "a; b;;c")
	defer func() {
		for _, k := range []string{"bool", "int", "duration", "seconds", "list"} {
			Unset("ballot.test." + k)
		}
	}()

	assert.True(t, GetBool("ballot.test.bool"))
	assert.True(t, GetBoolOr("ballot.test.nothing", true))
	assert.Equal(t, 42, GetInt("ballot.test.int"))
	assert.Equal(t, 7, GetIntOr("ballot.test.nothing", 7))
	assert.Equal(t, 15*time.Second, GetDurationOr("ballot.test.duration", time.Second))
	assert.Equal(t, 3*time.Second, GetDurationOr("ballot.test.seconds", time.Second))
	assert.Equal(t, time.Minute, GetDurationOr("ballot.test.nothing", time.Minute))
	assert.Equal(t, []string{"a", "b", "c"}, GetStringArray("ballot.test.list", ";"))
}

package env

import (
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var cache = make(map[string]string)
var cacheLock sync.RWMutex

func init() {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

// Get looks up key, preferring the contents of the file named by "<key>.file" when set.
func Get(key string) string {
	cacheLock.RLock()
	val, exists := cache[key]
	cacheLock.RUnlock()
	if exists {
		return val
	}

	filename := viper.GetString(key + ".file")
	if filename == "" {
		return viper.GetString(key)
	}

	val, err := readSecret(filename)
	if err != nil {
		//logger depends on env, so this cannot go through it
		_, _ = os.Stderr.WriteString("error reading secret " + filename + ": " + err.Error() + "\n")
		return ""
	}

	cacheLock.Lock()
	cache[key] = val
	cacheLock.Unlock()
	return val
}

// Set overrides key for the life of the process.
func Set(key string, val string) {
	cacheLock.Lock()
	cache[key] = val
	cacheLock.Unlock()
}

// Unset drops an override added with Set.
func Unset(key string) {
	cacheLock.Lock()
	delete(cache, key)
	cacheLock.Unlock()
}

func GetOr(key string, def string) string {
	res := Get(key)
	if res == "" {
		return def
	}
	return res
}

func GetBool(key string) bool {
	return GetBoolOr(key, false)
}

func GetBoolOr(key string, def bool) bool {
	res := Get(key)
	if res == "" {
		return def
	}
	return cast.ToBool(res)
}

func GetInt(key string) int {
	return cast.ToInt(Get(key))
}

func GetIntOr(key string, def int) int {
	res := cast.ToInt(Get(key))
	if res <= 0 {
		return def
	}
	return res
}

// GetDurationOr accepts Go duration strings ("30s") or plain seconds.
func GetDurationOr(key string, def time.Duration) time.Duration {
	res := Get(key)
	if res == "" {
		return def
	}
	if d, err := time.ParseDuration(res); err == nil && d > 0 {
		return d
	}
	if secs := cast.ToInt64(res); secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return def
}

func GetStringArray(key, separator string) []string {
	val := Get(key)
	if separator == "" {
		separator = ","
	}

	result := make([]string, 0)
	for _, v := range strings.Split(val, separator) {
		v = strings.TrimSpace(v)
		if v != "" {
			result = append(result, v)
		}
	}
	return result
}

func readSecret(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(data)), nil
}

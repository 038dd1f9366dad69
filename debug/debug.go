package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Bind    bool
	Convert bool
	Patch   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Bind = boolEnv("PROPFIELD_DEBUG_BIND")
	d.Convert = boolEnv("PROPFIELD_DEBUG_CONVERT")
	d.Patch = boolEnv("PROPFIELD_DEBUG_PATCH")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Bind() bool {
	return d.Bind
}
func Convert() bool {
	return d.Convert
}
func Patch() bool {
	return d.Patch
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
}

package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Scan     bool
	Compress bool
	Link     bool
	Registry bool
}

var d *debug

func init() {
	d = &debug{}
	d.Scan = boolEnv("DECKFMT_DEBUG_SCAN")
	d.Compress = boolEnv("DECKFMT_DEBUG_COMPRESS")
	d.Link = boolEnv("DECKFMT_DEBUG_LINK")
	d.Registry = boolEnv("DECKFMT_DEBUG_REGISTRY")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Scan() bool {
	return d.Scan
}
func Compress() bool {
	return d.Compress
}
func Link() bool {
	return d.Link
}
func Registry() bool {
	return d.Registry
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
	os.Stderr.Write([]byte("\n"))
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

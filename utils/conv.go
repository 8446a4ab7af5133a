package utils

import (
	"bytes"

	"golang.org/x/text/transform"

	"github.com/wiiskii/tank_havok_browser/config"
)

// BytesToString decodes a nil-terminated byte string from a tag file
// using the configured charmap (tank resources ship with cp1251 names).
func BytesToString(bs []byte) string {
	n := bytes.IndexByte(bs, 0)
	if n < 0 {
		n = len(bs)
	}

	cm := config.GetEncoding()
	if cm == nil {
		return string(bs[:n])
	}

	s, _, err := transform.Bytes(cm.NewDecoder(), bs[:n])
	if err != nil {
		panic(err)
	}

	return string(s)
}

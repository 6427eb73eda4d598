package command

import (
	"errors"
	"regexp"
	"strings"

	"github.com/WST-T/pweaseHiredMe/pkg/model"
)

// ErrNoValidKeys is returned when an update string contains none of the
// recognized keys.
var ErrNoValidKeys = errors.New("no recognized update keys")

// quotedPair matches key="..." tokens, allowing backslash escapes inside the
// quotes.
var quotedPair = regexp.MustCompile(`(\w+)=("(?:[^"\\]|\\.)*")`)

// ParseUpdates turns a free-text update request like
//
//	date=2024-03-01 time=15:30 desc="System Design round"
//
// into a partial field-update set. Two passes: quoted key="..." tokens are
// extracted and unescaped first, then bare key=value tokens fill in any keys
// the quoted pass did not consume. Recognized keys are date, time, type and
// desc; anything else is ignored.
func ParseUpdates(s string) (model.FieldUpdates, error) {
	var u model.FieldUpdates
	consumed := make(map[string]bool)

	for _, m := range quotedPair.FindAllStringSubmatch(s, -1) {
		key := strings.ToLower(m[1])
		consumed[key] = true
		setField(&u, key, unquote(m[2]))
	}

	for _, part := range strings.Fields(s) {
		eq := strings.Index(part, "=")
		if eq < 0 {
			continue
		}
		key := strings.ToLower(part[:eq])
		if consumed[key] {
			continue
		}
		setField(&u, key, part[eq+1:])
	}

	if u.IsZero() {
		return u, ErrNoValidKeys
	}
	return u, nil
}

func setField(u *model.FieldUpdates, key, value string) {
	switch key {
	case "date":
		if u.Date == nil {
			u.Date = &value
		}
	case "time":
		if u.Time == nil {
			u.Time = &value
		}
	case "type":
		if u.Category == nil {
			u.Category = &value
		}
	case "desc":
		if u.Description == nil {
			u.Description = &value
		}
	}
}

// unquote strips the surrounding quotes and de-escapes backslash-escaped
// characters literally.
func unquote(q string) string {
	q = q[1 : len(q)-1]
	if !strings.Contains(q, `\`) {
		return q
	}
	var b strings.Builder
	for i := 0; i < len(q); i++ {
		if q[i] == '\\' && i+1 < len(q) {
			i++
		}
		b.WriteByte(q[i])
	}
	return b.String()
}

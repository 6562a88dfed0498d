package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var tagDelimiters = regexp.MustCompile(`[\n,]+`)

// Tags is an ordered sequence of opaque labels (booking addons, workspace amenities).
//
// From JSON it accepts an array of strings, a string holding a JSON array,
// a newline/comma delimited string, or null. Blank entries are dropped.
// It is stored as JSON array text.
type Tags []string

// ParseTags applies the delimited-string form of the Tags contract.
func ParseTags(v string) Tags {
	v = strings.TrimSpace(v)
	if v == "" {
		return Tags{}
	}
	if strings.HasPrefix(v, "[") {
		var arr []string
		if err := json.Unmarshal([]byte(v), &arr); err == nil {
			return compactTags(arr)
		}
	}
	return compactTags(tagDelimiters.Split(v, -1))
}

func compactTags(in []string) Tags {
	out := make(Tags, 0, len(in))
	for _, t := range in {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (t Tags) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}

func (t *Tags) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*t = Tags{}
	case string:
		*t = ParseTags(v)
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("tags: expected string element, got %T", item)
			}
			items = append(items, s)
		}
		*t = compactTags(items)
	default:
		return fmt.Errorf("tags: unsupported JSON type %T", raw)
	}
	return nil
}

func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *Tags) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = Tags{}
		return nil
	case []byte:
		*t = ParseTags(string(v))
		return nil
	case string:
		*t = ParseTags(v)
		return nil
	default:
		return fmt.Errorf("tags: cannot scan %T", src)
	}
}

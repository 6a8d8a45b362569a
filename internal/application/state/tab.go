package state

import (
	"errors"
	"strings"
)

var ErrUnknownTab = errors.New("unknown tab")

// Tab is the catalog section currently selected by the user.
type Tab int

const (
	TabFeatured Tab = iota
	TabAll
)

func (t Tab) String() string {
	switch t {
	case TabFeatured:
		return "featured"
	case TabAll:
		return "all"
	default:
		return "unknown"
	}
}

func ParseTab(s string) (Tab, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "featured", "0":
		return TabFeatured, nil
	case "all", "1":
		return TabAll, nil
	default:
		return 0, ErrUnknownTab
	}
}

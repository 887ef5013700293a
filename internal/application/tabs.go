package application

import "errors"

// Tab is one of the mutually exclusive view panels.
type Tab string

const (
	TabNone     Tab = ""
	TabUsers    Tab = "users"
	TabProducts Tab = "products"
)

var ErrUnknownTab = errors.New("unknown tab")

// Tabs lists the fixed tab set in display order.
var Tabs = []Tab{TabUsers, TabProducts}

// ParseTab maps a tab name to a Tab.
func ParseTab(name string) (Tab, error) {
	for _, t := range Tabs {
		if string(t) == name {
			return t, nil
		}
	}
	return TabNone, ErrUnknownTab
}

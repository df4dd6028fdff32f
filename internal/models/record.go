package models

// Record is one code echoed back by the relay over the push channel.
type Record struct {
	Time   string `codec:"time" json:"time"`
	Digits string `codec:"digits" json:"digits"`
}

// SendRequest is the body posted to the submission endpoint.
type SendRequest struct {
	Digits string `codec:"digits" json:"digits"`
}

// Group holds the digits received within one minute, in scan order.
type Group struct {
	Minute string   `codec:"minute" json:"minute"`
	Digits []string `codec:"digits" json:"digits"`
}

// GroupedView is the per-minute view of the accumulated records.
// Groups appear in the order their minute was first seen.
type GroupedView []Group

// Lookup returns the digits stored under minute.
func (v GroupedView) Lookup(minute string) ([]string, bool) {
	for _, g := range v {
		if g.Minute == minute {
			return g.Digits, true
		}
	}
	return nil, false
}

// Minutes returns the group keys in view order.
func (v GroupedView) Minutes() []string {
	keys := make([]string, 0, len(v))
	for _, g := range v {
		keys = append(keys, g.Minute)
	}
	return keys
}

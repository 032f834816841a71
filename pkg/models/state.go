package models

// State is one U.S. state in the map section. States are favoritable via
// the synthetic id "state:" + Code.
type State struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Capital  string `json:"capital"`
	Admitted int    `json:"admitted"`
	Nickname string `json:"nickname,omitempty"`
}

// FavoriteID returns the synthetic favorite identifier for the state.
func (s State) FavoriteID() string {
	return "state:" + s.Code
}

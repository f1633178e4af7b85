package types

// ProfileInfo is the part of a kind 0 profile the pages show
type ProfileInfo struct {
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Picture     string `json:"picture,omitempty"`
}

// BestName prefers display_name over name. Safe on a nil profile.
func (p *ProfileInfo) BestName() string {
	switch {
	case p == nil:
		return ""
	case p.DisplayName != "":
		return p.DisplayName
	default:
		return p.Name
	}
}

package version

// Build bundles a version with its display name and integer code.
// Always create it with NewBuild so the three stay in sync.
type Build struct {
	Version Version `json:"version"`
	Name    string  `json:"name"`
	Code    int     `json:"code"`
}

// NewBuild derives name and code from v.
func NewBuild(v Version) Build {
	return Build{
		Version: v,
		Name:    v.Name(),
		Code:    v.Code(),
	}
}

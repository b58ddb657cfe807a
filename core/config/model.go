package config

// Rules drive the feed engine. Maps extend the built-in tables.
type Rules struct {
	DaysCheck  int                        `toml:"days_check"`
	PageLimit  int                        `toml:"page_limit"`
	Visibility map[string]map[string]bool `toml:"visibility"`
	Tags       Tags                       `toml:"tags"`
}

type Tags struct {
	Activities map[string]string `toml:"activities"`
	Contents   map[string]string `toml:"contents"`
}

func Defaults() Rules {
	return Rules{
		DaysCheck:  30,
		PageLimit:  10,
		Visibility: map[string]map[string]bool{},
		Tags: Tags{
			Activities: map[string]string{},
			Contents:   map[string]string{},
		},
	}
}

// Copy deep copies the maps so snapshots are never shared with a reload.
func (r Rules) Copy() Rules {
	c := r
	c.Visibility = make(map[string]map[string]bool, len(r.Visibility))
	for kind, roles := range r.Visibility {
		m := make(map[string]bool, len(roles))
		for role, v := range roles {
			m[role] = v
		}
		c.Visibility[kind] = m
	}
	c.Tags.Activities = copyStrings(r.Tags.Activities)
	c.Tags.Contents = copyStrings(r.Tags.Contents)
	return c
}

func copyStrings(src map[string]string) map[string]string {
	m := make(map[string]string, len(src))
	for k, v := range src {
		m[k] = v
	}
	return m
}

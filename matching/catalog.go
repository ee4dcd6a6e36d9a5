package matching

// Catalog is the single source of valid tag dimensions and activity types,
// shared by the matcher, validation, and the catalog endpoints.
type Catalog struct {
	TagChoices map[string][]string `json:"tagChoices"`
	Activities []string            `json:"activities"`
}

// DefaultCatalog returns the built-in tag and activity enumeration.
func DefaultCatalog() *Catalog {
	return &Catalog{
		TagChoices: map[string][]string{
			"yearOf": {"2025", "2026", "2027", "2028"},
			"major": {
				"Computer Sci.", "Biology", "Economics", "English",
				"Mechanical Eng.", "Psychology", "Mathematics", "History",
			},
			"housing": {
				"Umrath Hall", "Liggett Hall", "Eliot Hall",
				"Park Hall", "Shanedling Hall", "South 40",
			},
			"clubs": {
				"Running Club", "Climbing Club", "Swim Club",
				"Cycling Club", "Yoga Club", "Intramural Soccer",
			},
		},
		Activities: []string{"calories", "steps", "time", "distance"},
	}
}

// ValidTag reports whether tag appears in any dimension of the catalog.
func (c *Catalog) ValidTag(tag string) bool {
	for _, choices := range c.TagChoices {
		for _, choice := range choices {
			if choice == tag {
				return true
			}
		}
	}
	return false
}

// ValidActivity reports whether activity is a known activity type.
func (c *Catalog) ValidActivity(activity string) bool {
	for _, a := range c.Activities {
		if a == activity {
			return true
		}
	}
	return false
}

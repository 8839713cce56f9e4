package routes

// Compilation holds everything derived from one set of entries.
type Compilation struct {
	Entries        []Entry              `json:"entries"`
	Tree           []*Node              `json:"routes"`
	Classification *Classification      `json:"classification"`
	RouteMap       RouteMap             `json:"routesMap"`
	SearchParams   []SearchParamsSchema `json:"searchParams,omitempty"`
}

// Compile classifies entries and builds the route forest and route map.
// Only a DuplicateRouteParameter error can stop it.
func Compile(entries []Entry, table *Replacements, opts TreeOptions) (*Compilation, error) {
	patterns := Patterns(entries)

	classification, err := Classify(patterns, table)
	if err != nil {
		return nil, err
	}

	return &Compilation{
		Entries:        entries,
		Tree:           BuildTree(entries, opts),
		Classification: classification,
		RouteMap:       BuildRouteMap(patterns, table),
	}, nil
}

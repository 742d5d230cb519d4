package depot

// ServiceQuery defines criteria for querying identifiers.
type ServiceQuery struct {
	// Kind filters by how the identifier is configured.
	// Empty string matches all kinds.
	Kind Kind

	// Terminal filters by the identifier an entry resolves to.
	// Empty string matches all terminals.
	Terminal string

	// Instantiated filters by whether a shared instance is cached.
	// nil matches both.
	Instantiated *bool
}

// Query returns detailed information about identifiers matching the query criteria.
//
// Example:
//
//	// Every alias that ends at "db"
//	results := depot.Query(d, depot.ServiceQuery{
//	    Kind:     depot.KindAlias,
//	    Terminal: "db",
//	})
func Query(d Depot, query ServiceQuery) []ServiceInfo {
	var results []ServiceInfo

	for _, id := range d.Identifiers() {
		info := d.Inspect(id)

		if query.Kind != "" && info.Kind != query.Kind {
			continue
		}

		if query.Terminal != "" && info.Terminal != query.Terminal {
			continue
		}

		if query.Instantiated != nil && info.Instantiated != *query.Instantiated {
			continue
		}

		results = append(results, info)
	}

	return results
}

// QueryNames returns the identifiers matching the query criteria.
func QueryNames(d Depot, query ServiceQuery) []string {
	results := Query(d, query)
	names := make([]string, len(results))
	for i, info := range results {
		names[i] = info.ID
	}
	return names
}

// FindAliases returns every alias resolving to terminal.
func FindAliases(d Depot, terminal string) []ServiceInfo {
	return Query(d, ServiceQuery{Kind: KindAlias, Terminal: terminal})
}

// FindByKind returns all identifiers of one kind.
func FindByKind(d Depot, kind Kind) []ServiceInfo {
	return Query(d, ServiceQuery{Kind: kind})
}

// FindInstantiated returns all identifiers with a cached shared instance.
func FindInstantiated(d Depot) []ServiceInfo {
	instantiated := true
	return Query(d, ServiceQuery{Instantiated: &instantiated})
}

package merge

import "github.com/david3xu/mining-reliability-db-sub000/internal/record"

// Group is a non-empty run of records sharing one primary-key value, in
// first-seen order. A record whose key field is absent, null, or empty
// cannot be safely grouped and becomes its own Keyless singleton. It is
// never silently dropped and never pooled with other keyless records.
type Group struct {
	Key     string
	Keyless bool
	Records []record.Record
}

// GroupRecords partitions records by the key field's canonical value in a
// single pass. Groups appear in first-seen order; a keyless singleton holds
// the position its record first appeared at.
func GroupRecords(records []record.Record, keyField string) []Group {
	groups := make([]Group, 0, len(records))
	index := make(map[string]int)
	for _, r := range records {
		v, present := r.Get(keyField)
		if !present || record.IsNullish(v) {
			groups = append(groups, Group{Keyless: true, Records: []record.Record{r}})
			continue
		}
		key := record.CanonicalString(v)
		if i, ok := index[key]; ok {
			groups[i].Records = append(groups[i].Records, r)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, Group{Key: key, Records: []record.Record{r}})
	}
	return groups
}

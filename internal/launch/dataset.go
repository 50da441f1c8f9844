package launch

import "slices"

// Bounds holds the summaries used to initialize the dashboard controls.
type Bounds struct {
	MinPayload float64  `json:"min_payload"`
	MaxPayload float64  `json:"max_payload"`
	Sites      []string `json:"sites"`
}

// HasSite reports whether site is one of the distinct launch sites.
func (b Bounds) HasSite(site string) bool {
	return slices.Contains(b.Sites, site)
}

// Dataset is an immutable, ordered sequence of launch records.
//
// A Dataset is safe for concurrent readers. It exposes no mutators and all
// accessors that return slices return copies.
type Dataset struct {
	source  string
	records []Record
	bounds  Bounds
}

// NewDataset builds a dataset from records, computing the bounds once.
// The records slice is copied. An empty slice yields zero bounds.
func NewDataset(source string, records []Record) *Dataset {
	ds := &Dataset{
		source:  source,
		records: slices.Clone(records),
	}
	ds.bounds = computeBounds(ds.records)
	return ds
}

func computeBounds(records []Record) Bounds {
	b := Bounds{Sites: []string{}}
	seen := make(map[string]bool)
	for i, r := range records {
		if i == 0 || r.PayloadMassKg < b.MinPayload {
			b.MinPayload = r.PayloadMassKg
		}
		if i == 0 || r.PayloadMassKg > b.MaxPayload {
			b.MaxPayload = r.PayloadMassKg
		}
		if !seen[r.LaunchSite] {
			seen[r.LaunchSite] = true
			b.Sites = append(b.Sites, r.LaunchSite)
		}
	}
	return b
}

// Source returns the path or label the dataset was loaded from.
func (d *Dataset) Source() string {
	return d.source
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// At returns the record at index i. Panics if i is out of range.
func (d *Dataset) At(i int) Record {
	return d.records[i]
}

// Records returns a copy of all records in file order.
func (d *Dataset) Records() []Record {
	return slices.Clone(d.records)
}

// Each calls fn for every record in file order.
func (d *Dataset) Each(fn func(Record)) {
	for _, r := range d.records {
		fn(r)
	}
}

// Bounds returns the summaries derived at construction.
func (d *Dataset) Bounds() Bounds {
	b := d.bounds
	b.Sites = slices.Clone(d.bounds.Sites)
	return b
}

// MinPayload returns the smallest payload mass.
func (d *Dataset) MinPayload() float64 {
	return d.bounds.MinPayload
}

// MaxPayload returns the largest payload mass.
func (d *Dataset) MaxPayload() float64 {
	return d.bounds.MaxPayload
}

// Sites returns the distinct launch sites in first-seen order.
func (d *Dataset) Sites() []string {
	return slices.Clone(d.bounds.Sites)
}

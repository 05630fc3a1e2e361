package registry

// RawRow is one registry document flattened into ordered key/value pairs.
// Keys are attribute or element paths relative to the document element
// ("СведМН.КодРегион"); document level attributes keep their bare name.
type RawRow struct {
	File  string
	Index int // document position within the file, 1-based

	keys   []string
	values map[string]string
}

// Set records a field, keeping first-seen order. A repeated key overwrites
// the value but keeps its original position.
func (r *RawRow) Set(key, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Lookup returns the first non-empty value among the candidate keys.
func (r *RawRow) Lookup(candidates ...string) (string, bool) {
	for _, key := range candidates {
		if value, ok := r.values[key]; ok && value != "" {
			return value, true
		}
	}
	return "", false
}

// Keys returns the field names in source order.
func (r *RawRow) Keys() []string {
	return r.keys
}

// Value returns the value for a single key, or "".
func (r *RawRow) Value(key string) string {
	return r.values[key]
}

// Profile is a named field-mapping for one snapshot file layout. Each
// canonical attribute lists its candidate source keys in preference order,
// so layout drift between releases stays confined to these tables.
type Profile struct {
	Name       string
	INN        []string
	Category   []string
	RegionCode []string
	RegionName []string
	Address    []string
	Date       []string
}

// profileAttributes covers the attribute-based layout published since 2016:
// the INN lives on a kind-specific child element, the region on СведМН.
var profileAttributes = Profile{
	Name:       "attributes",
	INN:        []string{"ОргВклМСП.ИННЮЛ", "ИПВклМСП.ИННФЛ"},
	Category:   []string{"КатСубМСП", "СвПредМСП.КатСубМСП"},
	RegionCode: []string{"СведМН.КодРегион"},
	RegionName: []string{"СведМН.НаимРегион", "СведМН.Регион"},
	Address:    []string{"СведМН.АдресМН"},
	Date:       []string{"ДатаСост", "ДатаВклМСП"},
}

// profileElements covers the older element-based layout where every field
// is a child element with character data.
var profileElements = Profile{
	Name:       "elements",
	INN:        []string{"ИННЮЛ", "ИННФЛ", "ИНН"},
	Category:   []string{"КатСубМСП", "Категория"},
	RegionCode: []string{"КодРегион", "РегионКод"},
	RegionName: []string{"Регион", "НаимРегион"},
	Address:    []string{"Адрес", "АдресМН"},
	Date:       []string{"ДатаСост"},
}

var profiles = []Profile{profileAttributes, profileElements}

// DetectProfile picks the field-mapping profile whose INN keys appear in
// the row. Rows matching no profile cannot be normalized.
func DetectProfile(row *RawRow) (Profile, bool) {
	for _, profile := range profiles {
		if _, ok := row.Lookup(profile.INN...); ok {
			return profile, true
		}
	}
	return Profile{}, false
}

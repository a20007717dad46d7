package model

// -----------------------------------------------------------------------------
// Discovery Types
// -----------------------------------------------------------------------------

// TickerInfo is one record returned by screener discovery.
type TickerInfo struct {
	Ticker   string // Primary key (e.g., "AAPL")
	Sector   string // Sector classification (e.g., "Technology")
	Industry string // Industry classification
	Region   string // Two-letter region code (e.g., "us")
}

// Country returns the full country name for the record's region code.
func (t TickerInfo) Country() string {
	return RegionName(t.Region)
}

// regionNames maps screener region codes to country names.
var regionNames = map[string]string{
	"ar": "Argentina",
	"at": "Austria",
	"be": "Belgium",
	"br": "Brazil",
	"ca": "Canada",
	"ch": "Switzerland",
	"cl": "Chile",
	"cn": "China",
	"cz": "Czech Republic",
	"de": "Germany",
	"dk": "Denmark",
	"fr": "France",
	"gb": "United Kingdom",
	"hk": "Hong Kong",
	"hu": "Hungary",
	"id": "Indonesia",
	"il": "Israel",
	"in": "India",
	"is": "Iceland",
	"it": "Italy",
	"jp": "Japan",
	"kr": "South Korea",
	"kw": "Kuwait",
	"mx": "Mexico",
	"nl": "Netherlands",
	"no": "Norway",
	"pl": "Poland",
	"sa": "Saudi Arabia",
	"se": "Sweden",
	"tr": "Turkey",
	"tw": "Taiwan",
	"us": "United States",
	"ve": "Venezuela",
	"za": "South Africa",
}

// RegionName maps a region code to a country name, "Unknown" if unmapped.
func RegionName(code string) string {
	if name, ok := regionNames[code]; ok {
		return name
	}
	return "Unknown"
}

// AllRegions returns every region code the screener can be queried for.
func AllRegions() []string {
	regions := make([]string, 0, len(regionNames))
	for code := range regionNames {
		regions = append(regions, code)
	}
	return regions
}

// -----------------------------------------------------------------------------
// Quote Types
// -----------------------------------------------------------------------------

// QuoteRecord is one fully-keyed harvested record. Fields always contains
// every schema field name; values the endpoint did not return are nil.
// Records are treated as immutable once handed to a writer.
type QuoteRecord struct {
	Ticker string
	Fields map[string]any
}

// NewQuoteRecord builds a record from a raw per-symbol field map,
// normalizing it onto the fixed schema. Raw keys outside the schema are
// dropped; schema keys missing from raw become explicit nils.
func NewQuoteRecord(ticker string, raw map[string]any) QuoteRecord {
	fields := make(map[string]any, len(Fields))
	for _, f := range Fields {
		fields[f.Name] = raw[f.Name] // nil when absent
	}
	return QuoteRecord{Ticker: ticker, Fields: fields}
}

// Value returns the value of a schema field, nil if absent.
func (r QuoteRecord) Value(name string) any {
	return r.Fields[name]
}

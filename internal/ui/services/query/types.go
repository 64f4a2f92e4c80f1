package query

// Kind tells which variant a Classification holds
type Kind int

const (
	// KindPlain drives the backend file search
	KindPlain Kind = iota
	// KindWebsite is a hostname or URL to open directly
	KindWebsite
	// KindBang redirects the query to an external search service
	KindBang
)

// String returns the variant name
func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindWebsite:
		return "website"
	case KindBang:
		return "bang"
	default:
		return "unknown"
	}
}

// Classification is the result of classifying one query.
// Service is only set for KindBang; URL is set for KindWebsite and KindBang.
type Classification struct {
	Kind    Kind
	Service string
	URL     string
}

// IsPlain reports whether the query should go to the backend search
func (c Classification) IsPlain() bool {
	return c.Kind == KindPlain
}

// IsLink reports whether the query resolved to something the browser opens
func (c Classification) IsLink() bool {
	return c.Kind == KindWebsite || c.Kind == KindBang
}

// BangEntry maps a trigger such as "gh" to a search service
type BangEntry struct {
	Trigger     string `toml:"trigger"`
	Service     string `toml:"service"`
	URLTemplate string `toml:"url"`
}

// Placeholder is substituted with the URL-encoded query in a BangEntry template
const Placeholder = "{{{s}}}"

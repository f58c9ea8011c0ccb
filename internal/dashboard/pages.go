package dashboard

// AppName is the dashboard title
const AppName = "TradeCare - Bitcoin ML Prediction Tool"

// Banner is shown on every page
const Banner = "⚠️ EDUCATIONAL ONLY. Models have weak predictive power (51% accuracy, R²=-0.037). NOT for actual trading!"

// Page slugs, in navigation order
const (
	SlugSummary    = "project-summary"
	SlugStudy      = "data-study"
	SlugPredictor  = "price-trade-predictor"
	SlugHypothesis = "hypothesis-validation"
	SlugTechnical  = "technical-overview"
)

// Metric is one headline number
type Metric struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Caption string `json:"caption,omitempty"`
}

// Table is a small static table
type Table struct {
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Section is a heading with a markdown body
type Section struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Page is one entry of the multipage shell
type Page struct {
	Slug     string    `json:"slug"`
	Title    string    `json:"title"`
	Icon     string    `json:"icon"`
	Sections []Section `json:"sections"`
	Metrics  []Metric  `json:"metrics,omitempty"`
	Tables   []Table   `json:"tables,omitempty"`
}

// PageRef is the navigation entry of a page
type PageRef struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

// Shell is the navigation frame around the pages
type Shell struct {
	AppName string    `json:"app_name"`
	Banner  string    `json:"banner"`
	Footer  string    `json:"footer"`
	Pages   []PageRef `json:"pages"`
}

// NewShell returns the navigation frame
func NewShell() Shell {
	pages := Pages()
	refs := make([]PageRef, len(pages))
	for i, p := range pages {
		refs[i] = PageRef{Slug: p.Slug, Title: p.Title, Icon: p.Icon}
	}
	return Shell{
		AppName: AppName,
		Banner:  Banner,
		Footer:  "TradeCare Project · Predictive Analytics · Dataset: https://github.com/mouadja02/bitcoin-hourly-ohclv-dataset",
		Pages:   refs,
	}
}

// Find returns the page with the given slug
func Find(slug string) (Page, bool) {
	for _, p := range Pages() {
		if p.Slug == slug {
			return p, true
		}
	}
	return Page{}, false
}

// Pages returns every page in navigation order.
// Content is static; a fresh copy is built per call.
func Pages() []Page {
	return []Page{
		summaryPage(),
		studyPage(),
		predictorPage(),
		hypothesisPage(),
		technicalPage(),
	}
}

package similarity

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// KnownEntity is an existing company that candidates are compared against.
type KnownEntity struct {
	Name     string `yaml:"name" json:"name"`
	Category string `yaml:"category" json:"category"`
}

// Catalog is a read-only, ordered set of known entities keyed by lower-case
// name. It has no mutation API once built.
type Catalog struct {
	entities []KnownEntity
}

// NewCatalog builds a catalog from entities. Names are lower-cased and
// trimmed; a repeated name keeps its first position and takes the later
// category.
func NewCatalog(entities []KnownEntity) *Catalog {
	index := make(map[string]int, len(entities))
	out := make([]KnownEntity, 0, len(entities))
	for _, e := range entities {
		name := strings.ToLower(strings.TrimSpace(e.Name))
		if name == "" {
			continue
		}
		if i, ok := index[name]; ok {
			out[i].Category = e.Category
			continue
		}
		index[name] = len(out)
		out = append(out, KnownEntity{Name: name, Category: e.Category})
	}
	return &Catalog{entities: out}
}

// Entities returns a copy of the catalog entries in order.
func (c *Catalog) Entities() []KnownEntity {
	out := make([]KnownEntity, len(c.entities))
	copy(out, c.entities)
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entities)
}

// Category returns the category for a name, if present.
func (c *Catalog) Category(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, e := range c.entities {
		if e.Name == name {
			return e.Category, true
		}
	}
	return "", false
}

// LoadCatalog reads a YAML catalog of the form:
//
//	entities:
//	  - name: stripe
//	    category: payments
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "similarity: read catalog %s", path)
	}

	var doc struct {
		Entities []KnownEntity `yaml:"entities"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrapf(err, "similarity: parse catalog %s", path)
	}
	if len(doc.Entities) == 0 {
		return nil, eris.Errorf("similarity: catalog %s has no entities", path)
	}

	return NewCatalog(doc.Entities), nil
}

// DefaultCatalog returns the built-in reference set of well-known tech and
// business companies. Illustrative, not exhaustive.
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultEntities)
}

var defaultEntities = []KnownEntity{
	{"stripe", "payments"},
	{"shopify", "e-commerce"},
	{"slack", "communication"},
	{"zoom", "video conferencing"},
	{"notion", "productivity"},
	{"figma", "design"},
	{"canva", "design"},
	{"asana", "project management"},
	{"trello", "project management"},
	{"airtable", "productivity"},
	{"hubspot", "marketing"},
	{"mailchimp", "email marketing"},
	{"twilio", "communication APIs"},
	{"plaid", "fintech"},
	{"brex", "fintech"},
	{"ramp", "fintech"},
	{"gusto", "HR/payroll"},
	{"rippling", "HR"},
	{"deel", "HR"},
	{"lattice", "HR"},
	{"lever", "recruiting"},
	{"greenhouse", "recruiting"},
	{"datadog", "monitoring"},
	{"snowflake", "data"},
	{"databricks", "data"},
	{"confluent", "data streaming"},
	{"vercel", "hosting"},
	{"netlify", "hosting"},
	{"supabase", "database"},
	{"firebase", "backend"},
	{"mongodb", "database"},
	{"elastic", "search"},
	{"algolia", "search"},
	{"auth0", "authentication"},
	{"okta", "identity"},
	{"cloudflare", "infrastructure"},
	{"fastly", "CDN"},
	{"segment", "analytics"},
	{"amplitude", "analytics"},
	{"mixpanel", "analytics"},
	{"intercom", "customer support"},
	{"zendesk", "customer support"},
	{"freshworks", "customer support"},
	{"calendly", "scheduling"},
	{"loom", "video"},
	{"miro", "collaboration"},
	{"linear", "project management"},
	{"monday", "project management"},
	{"clickup", "project management"},
	{"anthropic", "AI"},
	{"openai", "AI"},
	{"cohere", "AI"},
	{"stability", "AI"},
	{"midjourney", "AI"},
	{"jasper", "AI"},
	{"copy.ai", "AI"},
	{"grammarly", "writing"},
	{"coda", "productivity"},
}

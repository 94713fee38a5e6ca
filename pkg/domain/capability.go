package domain

// DomainCapability describes one domain handler. Capabilities are built once at
// start-up and shared read-only across requests.
type DomainCapability struct {
	Domain         string   `json:"domain" yaml:"domain"`
	Subdomains     []string `json:"subdomains" yaml:"subdomains"`
	Keywords       []string `json:"keywords" yaml:"keywords"`
	ExpertiseAreas []string `json:"expertise_areas" yaml:"expertise_areas"`
}

// Package domain holds the metadata types shared by the metadata transport and store
package domain

// Metadata lists the category values the scorer knows. Order is the source order
type Metadata struct {
	Industries []string `json:"industries" yaml:"industries"`
	Regions    []string `json:"regions" yaml:"regions"`
}

// Empty is the value served when no source could be loaded
func Empty() Metadata { return Metadata{Industries: []string{}, Regions: []string{}} }

// Normalized replaces nil lists with empty ones so encoders never emit null
func (m Metadata) Normalized() Metadata {
	if m.Industries == nil {
		m.Industries = []string{}
	}
	if m.Regions == nil {
		m.Regions = []string{}
	}
	return m
}

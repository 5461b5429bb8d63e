// Package sector defines the closed set of dashboard sectors and the generic
// JSON document model their datasets share.
package sector

// Key identifies one of the eleven fixed data sectors.
type Key string

const (
	MilkProduction         Key = "milk-production"
	Infrastructure         Key = "infrastructure"
	ArtificialInsemination Key = "artificial-insemination"
	Fisheries              Key = "fisheries"
	HealthImmunization     Key = "health-immunization"
	HealthInfrastructure   Key = "health-infrastructure"
	HealthMaternalChild    Key = "health-maternal-child"
	HealthNutrition        Key = "health-nutrition"
	Funding                Key = "funding"
	Overview               Key = "overview"
	Geographic             Key = "geographic"
)

// Keys lists all sectors in template-file order.
var Keys = []Key{
	MilkProduction,
	Infrastructure,
	ArtificialInsemination,
	Fisheries,
	HealthImmunization,
	HealthInfrastructure,
	HealthMaternalChild,
	HealthNutrition,
	Funding,
	Overview,
	Geographic,
}

// Valid reports whether k is one of the known sector keys.
func (k Key) Valid() bool {
	for _, known := range Keys {
		if k == known {
			return true
		}
	}
	return false
}

package models

// Planet represents a planet record in the database using GORM.
// It corresponds to the 'planets' table.
type Planet struct {
	ID             uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string  `gorm:"not null;uniqueIndex" json:"name"`
	URL            string  `gorm:"uniqueIndex" json:"url"`
	RotationPeriod int     `gorm:"" json:"rotation_period"` // hours
	OrbitalPeriod  int     `gorm:"" json:"orbital_period"`  // days
	Diameter       int     `gorm:"" json:"diameter"`        // km
	Climate        string  `gorm:"" json:"climate"`
	Gravity        string  `gorm:"" json:"gravity"`
	Terrain        string  `gorm:"" json:"terrain"`
	SurfaceWater   float64 `gorm:"" json:"surface_water"` // percentage, 0 is a legitimate value
	Population     int64   `gorm:"" json:"population"`
	CreatedAt      int64   `gorm:"not null" json:"created"`
	EditedAt       int64   `gorm:"not null" json:"edited"`

	Residents []*Person `gorm:"many2many:person_planets;joinForeignKey:PlanetID;joinReferences:PersonID" json:"residents,omitempty"`
	Species   []*Specie `gorm:"many2many:planet_species;joinForeignKey:PlanetID;joinReferences:SpecieID" json:"species,omitempty"`
	Films     []*Film   `gorm:"many2many:film_planets;joinForeignKey:PlanetID;joinReferences:FilmID" json:"films,omitempty"`
	Images    []Image   `gorm:"polymorphic:Owner;polymorphicValue:planets" json:"images,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Planet) TableName() string {
	return "planets"
}

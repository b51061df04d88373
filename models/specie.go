package models

// Specie represents a species record in the database using GORM.
// It corresponds to the 'species' table.
type Specie struct {
	ID              uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string  `gorm:"not null;uniqueIndex" json:"name"`
	URL             string  `gorm:"uniqueIndex" json:"url"`
	Classification  string  `gorm:"" json:"classification"`
	Designation     string  `gorm:"" json:"designation"`
	AverageHeight   float64 `gorm:"" json:"average_height"` // cm
	SkinColors      string  `gorm:"" json:"skin_colors"`
	HairColors      string  `gorm:"" json:"hair_colors"`
	EyeColors       string  `gorm:"" json:"eye_colors"`
	AverageLifespan int     `gorm:"" json:"average_lifespan"` // years
	Language        string  `gorm:"" json:"language"`
	CreatedAt       int64   `gorm:"not null" json:"created"`
	EditedAt        int64   `gorm:"not null" json:"edited"`

	Homeworld []*Planet `gorm:"many2many:planet_species;joinForeignKey:SpecieID;joinReferences:PlanetID" json:"homeworld,omitempty"`
	People    []*Person `gorm:"many2many:person_species;joinForeignKey:SpecieID;joinReferences:PersonID" json:"people,omitempty"`
	Films     []*Film   `gorm:"many2many:film_species;joinForeignKey:SpecieID;joinReferences:FilmID" json:"films,omitempty"`
	Images    []Image   `gorm:"polymorphic:Owner;polymorphicValue:species" json:"images,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Specie) TableName() string {
	return "species"
}

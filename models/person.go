package models

// Person represents a character record in the database using GORM.
// It corresponds to the 'people' table.
type Person struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"not null;uniqueIndex" json:"name"`
	URL       string `gorm:"uniqueIndex" json:"url"`
	Height    int    `gorm:"" json:"height"`
	Mass      int    `gorm:"" json:"mass"`
	HairColor string `gorm:"" json:"hair_color"`
	SkinColor string `gorm:"" json:"skin_color"`
	EyeColor  string `gorm:"" json:"eye_color"`
	BirthYear string `gorm:"" json:"birth_year"`
	Gender    string `gorm:"" json:"gender"`
	CreatedAt int64  `gorm:"not null" json:"created"` // Unix timestamp
	EditedAt  int64  `gorm:"not null" json:"edited"`  // Unix timestamp

	// each many-to-many below is declared on both owning models with the
	// same join table and column mapping; see the inverse side on each
	Homeworld []*Planet   `gorm:"many2many:person_planets;joinForeignKey:PersonID;joinReferences:PlanetID" json:"homeworld,omitempty"`
	Films     []*Film     `gorm:"many2many:person_films;joinForeignKey:PersonID;joinReferences:FilmID" json:"films,omitempty"`
	Species   []*Specie   `gorm:"many2many:person_species;joinForeignKey:PersonID;joinReferences:SpecieID" json:"species,omitempty"`
	Vehicles  []*Vehicle  `gorm:"many2many:person_vehicles;joinForeignKey:PersonID;joinReferences:VehicleID" json:"vehicles,omitempty"`
	Starships []*Starship `gorm:"many2many:person_starships;joinForeignKey:PersonID;joinReferences:StarshipID" json:"starships,omitempty"`
	Images    []Image     `gorm:"polymorphic:Owner;polymorphicValue:people" json:"images,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Person) TableName() string {
	return "people"
}

package models

// Film represents a film record in the database using GORM.
// It corresponds to the 'films' table. Films use Title rather than Name
// as their unique display attribute.
type Film struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string `gorm:"not null;uniqueIndex" json:"title"`
	URL          string `gorm:"uniqueIndex" json:"url"`
	EpisodeID    int    `gorm:"" json:"episode_id"`
	OpeningCrawl string `gorm:"" json:"opening_crawl"`
	Director     string `gorm:"" json:"director"`
	Producer     string `gorm:"" json:"producer"`
	ReleaseDate  string `gorm:"" json:"release_date"` // ISO date, e.g. 1977-05-25
	CreatedAt    int64  `gorm:"not null" json:"created"`
	EditedAt     int64  `gorm:"not null" json:"edited"`

	Characters []*Person   `gorm:"many2many:person_films;joinForeignKey:FilmID;joinReferences:PersonID" json:"characters,omitempty"`
	Planets    []*Planet   `gorm:"many2many:film_planets;joinForeignKey:FilmID;joinReferences:PlanetID" json:"planets,omitempty"`
	Starships  []*Starship `gorm:"many2many:film_starships;joinForeignKey:FilmID;joinReferences:StarshipID" json:"starships,omitempty"`
	Vehicles   []*Vehicle  `gorm:"many2many:film_vehicles;joinForeignKey:FilmID;joinReferences:VehicleID" json:"vehicles,omitempty"`
	Species    []*Specie   `gorm:"many2many:film_species;joinForeignKey:FilmID;joinReferences:SpecieID" json:"species,omitempty"`
	Images     []Image     `gorm:"polymorphic:Owner;polymorphicValue:films" json:"images,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Film) TableName() string {
	return "films"
}

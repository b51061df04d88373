package models

// Starship represents a starship record in the database using GORM.
// It corresponds to the 'starships' table and shares the vehicle shape
// plus hyperdrive attributes.
type Starship struct {
	ID               uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string  `gorm:"not null;uniqueIndex" json:"name"`
	URL              string  `gorm:"uniqueIndex" json:"url"`
	Model            string  `gorm:"" json:"model"`
	Manufacturer     string  `gorm:"" json:"manufacturer"`
	CostInCredits    int64   `gorm:"" json:"cost_in_credits"`
	Length           float64 `gorm:"" json:"length"`
	MaxSpeed         int     `gorm:"" json:"max_atmosphering_speed"`
	Crew             int     `gorm:"" json:"crew"`
	Passengers       int     `gorm:"" json:"passengers"`
	CargoCapacity    int64   `gorm:"" json:"cargo_capacity"`
	Consumables      string  `gorm:"" json:"consumables"`
	HyperdriveRating float64 `gorm:"" json:"hyperdrive_rating"`
	MGLT             int     `gorm:"column:mglt" json:"MGLT"` // megalights per hour
	StarshipClass    string  `gorm:"" json:"starship_class"`
	CreatedAt        int64   `gorm:"not null" json:"created"`
	EditedAt         int64   `gorm:"not null" json:"edited"`

	Pilots []*Person `gorm:"many2many:person_starships;joinForeignKey:StarshipID;joinReferences:PersonID" json:"pilots,omitempty"`
	Films  []*Film   `gorm:"many2many:film_starships;joinForeignKey:StarshipID;joinReferences:FilmID" json:"films,omitempty"`
	Images []Image   `gorm:"polymorphic:Owner;polymorphicValue:starships" json:"images,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Starship) TableName() string {
	return "starships"
}

package models

// Vehicle represents a ground or atmospheric craft record in the database
// using GORM. It corresponds to the 'vehicles' table.
type Vehicle struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string  `gorm:"not null;uniqueIndex" json:"name"`
	URL           string  `gorm:"uniqueIndex" json:"url"`
	Model         string  `gorm:"" json:"model"`
	Manufacturer  string  `gorm:"" json:"manufacturer"`
	CostInCredits int64   `gorm:"" json:"cost_in_credits"`
	Length        float64 `gorm:"" json:"length"` // meters
	MaxSpeed      int     `gorm:"" json:"max_atmosphering_speed"`
	Crew          int     `gorm:"" json:"crew"`
	Passengers    int     `gorm:"" json:"passengers"`
	CargoCapacity int64   `gorm:"" json:"cargo_capacity"` // kg
	Consumables   string  `gorm:"" json:"consumables"`
	VehicleClass  string  `gorm:"" json:"vehicle_class"`
	CreatedAt     int64   `gorm:"not null" json:"created"`
	EditedAt      int64   `gorm:"not null" json:"edited"`

	Pilots []*Person `gorm:"many2many:person_vehicles;joinForeignKey:VehicleID;joinReferences:PersonID" json:"pilots,omitempty"`
	Films  []*Film   `gorm:"many2many:film_vehicles;joinForeignKey:VehicleID;joinReferences:FilmID" json:"films,omitempty"`
	Images []Image   `gorm:"polymorphic:Owner;polymorphicValue:vehicles" json:"images,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Vehicle) TableName() string {
	return "vehicles"
}

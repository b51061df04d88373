package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/stellarchive/catalogbackend/apperrors"
	"github.com/stellarchive/catalogbackend/database"
)

// Kind describes one registered catalog entity kind: its lowercase name (as
// used in URLs and image ownership) and the join-table metadata of each of
// its many-to-many relations. Registering a new kind here is the single seam
// required to make it resolvable.
type Kind struct {
	Name      string
	Relations map[string]database.Relation
}

var kindRegistry = map[string]Kind{
	"people": {
		Name: "people",
		Relations: map[string]database.Relation{
			"homeworld": {JoinTable: "person_planets", SourceKey: "person_id", TargetKey: "planet_id"},
			"films":     {JoinTable: "person_films", SourceKey: "person_id", TargetKey: "film_id"},
			"species":   {JoinTable: "person_species", SourceKey: "person_id", TargetKey: "specie_id"},
			"vehicles":  {JoinTable: "person_vehicles", SourceKey: "person_id", TargetKey: "vehicle_id"},
			"starships": {JoinTable: "person_starships", SourceKey: "person_id", TargetKey: "starship_id"},
		},
	},
	"planets": {
		Name: "planets",
		Relations: map[string]database.Relation{
			"residents": {JoinTable: "person_planets", SourceKey: "planet_id", TargetKey: "person_id"},
			"species":   {JoinTable: "planet_species", SourceKey: "planet_id", TargetKey: "specie_id"},
			"films":     {JoinTable: "film_planets", SourceKey: "planet_id", TargetKey: "film_id"},
		},
	},
	"films": {
		Name: "films",
		Relations: map[string]database.Relation{
			"characters": {JoinTable: "person_films", SourceKey: "film_id", TargetKey: "person_id"},
			"planets":    {JoinTable: "film_planets", SourceKey: "film_id", TargetKey: "planet_id"},
			"starships":  {JoinTable: "film_starships", SourceKey: "film_id", TargetKey: "starship_id"},
			"vehicles":   {JoinTable: "film_vehicles", SourceKey: "film_id", TargetKey: "vehicle_id"},
			"species":    {JoinTable: "film_species", SourceKey: "film_id", TargetKey: "specie_id"},
		},
	},
	"species": {
		Name: "species",
		Relations: map[string]database.Relation{
			"homeworld": {JoinTable: "planet_species", SourceKey: "specie_id", TargetKey: "planet_id"},
			"people":    {JoinTable: "person_species", SourceKey: "specie_id", TargetKey: "person_id"},
			"films":     {JoinTable: "film_species", SourceKey: "specie_id", TargetKey: "film_id"},
		},
	},
	"vehicles": {
		Name: "vehicles",
		Relations: map[string]database.Relation{
			"pilots": {JoinTable: "person_vehicles", SourceKey: "vehicle_id", TargetKey: "person_id"},
			"films":  {JoinTable: "film_vehicles", SourceKey: "vehicle_id", TargetKey: "film_id"},
		},
	},
	"starships": {
		Name: "starships",
		Relations: map[string]database.Relation{
			"pilots": {JoinTable: "person_starships", SourceKey: "starship_id", TargetKey: "person_id"},
			"films":  {JoinTable: "film_starships", SourceKey: "starship_id", TargetKey: "film_id"},
		},
	},
}

// KindByName looks up a registered entity kind by its lowercase name
func KindByName(name string) (Kind, error) {
	kind, ok := kindRegistry[name]
	if !ok {
		return Kind{}, apperrors.UnknownEntity(name)
	}
	return kind, nil
}

// EntitiesByIDs resolves each id to its entity through an individual
// primary-key lookup. Ids that do not resolve are silently omitted from the
// result; one bad id never fails the batch. Empty or nil input returns an
// empty slice without querying.
func EntitiesByIDs[T any](db *gorm.DB, ids []uint) ([]*T, error) {
	entities := make([]*T, 0, len(ids))
	for _, id := range ids {
		var entity T
		err := db.First(&entity, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		entities = append(entities, &entity)
	}
	return entities, nil
}

// RelationIDs returns the id-only projection of all entities of the named
// kind joined to the given id through relationName, the inverse-side read
// used when the owning side is not eagerly loaded
func RelationIDs(db *gorm.DB, kindName, relationName string, id uint) ([]uint, error) {
	kind, err := KindByName(kindName)
	if err != nil {
		return nil, err
	}
	rel, ok := kind.Relations[relationName]
	if !ok {
		return nil, apperrors.UnknownEntity(kindName + "." + relationName)
	}
	return database.RelationIDs(db, rel, id)
}

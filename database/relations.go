package database

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// Relation describes one direction of a many-to-many join table: rows are
// filtered by SourceKey and the TargetKey column is projected. The inverse
// direction of the same table is a second Relation with the keys swapped.
type Relation struct {
	JoinTable string
	SourceKey string
	TargetKey string
}

// RelationIDs returns the id-only projection of all rows joined to the given
// id through rel. Used to materialize the inverse side of a many-to-many on
// read paths where the owning side is not eagerly loaded.
func RelationIDs(db *gorm.DB, rel Relation, id uint) ([]uint, error) {
	queryBuilder := psql.Select(rel.TargetKey).
		From(rel.JoinTable).
		Where(sq.Eq{rel.SourceKey: id})

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL query for RelationIDs: %w", err)
	}

	rows, err := db.Raw(sqlStr, args...).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query %s by %s=%d: %w", rel.JoinTable, rel.SourceKey, id, err)
	}
	defer rows.Close()

	ids := make([]uint, 0)
	for rows.Next() {
		var relatedID uint
		if err := rows.Scan(&relatedID); err != nil {
			return nil, fmt.Errorf("failed to scan related id from %s: %w", rel.JoinTable, err)
		}
		ids = append(ids, relatedID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read related ids from %s: %w", rel.JoinTable, err)
	}
	return ids, nil
}

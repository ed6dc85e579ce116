package database

import (
	"database/sql"
	"fmt"
)

// execRequireRows wraps an update/delete result, translating zero affected
// rows into notFound.
func execRequireRows(result sql.Result, err, notFound error) error {
	if err != nil {
		return fmt.Errorf("failed to execute statement: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return notFound
	}

	return nil
}

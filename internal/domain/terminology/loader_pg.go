package terminology

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGLoader reads the reference catalogs from Postgres tables, for
// deployments that manage reference data centrally instead of shipping
// JSON files alongside the binary.
type PGLoader struct {
	pool *pgxpool.Pool
}

// NewPGLoader creates a loader over an existing connection pool.
func NewPGLoader(pool *pgxpool.Pool) *PGLoader {
	return &PGLoader{pool: pool}
}

// Load reads all three reference tables. Rows are returned in primary
// key order so index tie-breaking stays deterministic across restarts.
func (l *PGLoader) Load(ctx context.Context) (*Catalogs, error) {
	var catalogs Catalogs

	rows, err := l.pool.Query(ctx,
		`SELECT code, display, COALESCE(category, '')
		 FROM reference_cid10 ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("cid10 load: %w", err)
	}
	for rows.Next() {
		var c CID10Code
		if err := rows.Scan(&c.Code, &c.Display, &c.Category); err != nil {
			rows.Close()
			return nil, fmt.Errorf("cid10 scan: %w", err)
		}
		catalogs.Diagnoses = append(catalogs.Diagnoses, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cid10 load: %w", err)
	}

	rows, err = l.pool.Query(ctx,
		`SELECT name, dcb, COALESCE(synonyms, '{}')
		 FROM reference_dcb ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("dcb load: %w", err)
	}
	for rows.Next() {
		var d DCBDrug
		if err := rows.Scan(&d.Name, &d.DCB, &d.Synonyms); err != nil {
			rows.Close()
			return nil, fmt.Errorf("dcb scan: %w", err)
		}
		catalogs.Drugs = append(catalogs.Drugs, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dcb load: %w", err)
	}

	rows, err = l.pool.Query(ctx,
		`SELECT code, description, COALESCE(table_id, ''), COALESCE(category, ''), COALESCE(synonyms, '{}')
		 FROM reference_tuss ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("tuss load: %w", err)
	}
	for rows.Next() {
		var p TUSSProcedure
		if err := rows.Scan(&p.Code, &p.Description, &p.Table, &p.Category, &p.Synonyms); err != nil {
			rows.Close()
			return nil, fmt.Errorf("tuss scan: %w", err)
		}
		catalogs.Procedures = append(catalogs.Procedures, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tuss load: %w", err)
	}

	return &catalogs, nil
}

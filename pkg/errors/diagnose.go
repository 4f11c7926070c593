package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Diagnostic is the loggable breakdown of an error chain. PG is populated
// only when a Postgres driver error hides somewhere in the chain, which is
// what usually explains a 5xx from a repository.
type Diagnostic struct {
	Message string   `json:"message"`
	Code    Code     `json:"code,omitempty"`
	Chain   []string `json:"chain,omitempty"`
	PG      *PGInfo  `json:"pg,omitempty"`
}

// PGInfo carries the driver-level Postgres fields worth logging.
type PGInfo struct {
	Code       string `json:"code,omitempty"`
	Constraint string `json:"constraint,omitempty"`
	Table      string `json:"table,omitempty"`
	Column     string `json:"column,omitempty"`
	Detail     string `json:"detail,omitempty"`
	Message    string `json:"message,omitempty"`
}

// Diagnose walks the error chain and extracts everything the error log needs
// in one place. Both the pgx and lib/pq drivers are checked since gorm and
// goose sit on different ones.
func Diagnose(err error) Diagnostic {
	if err == nil {
		return Diagnostic{}
	}

	diag := Diagnostic{Message: err.Error(), PG: pgInfo(err)}
	if typed := As(err); typed != nil {
		diag.Code = typed.Code()
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		diag.Chain = append(diag.Chain, fmt.Sprintf("%T: %v", e, e))
	}
	return diag
}

func pgInfo(err error) *PGInfo {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return &PGInfo{
			Code:       pgxErr.Code,
			Constraint: pgxErr.ConstraintName,
			Table:      pgxErr.TableName,
			Column:     pgxErr.ColumnName,
			Detail:     pgxErr.Detail,
			Message:    pgxErr.Message,
		}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return &PGInfo{
			Code:       string(pqErr.Code),
			Constraint: pqErr.Constraint,
			Table:      pqErr.Table,
			Column:     pqErr.Column,
			Detail:     pqErr.Detail,
			Message:    pqErr.Message,
		}
	}
	return nil
}

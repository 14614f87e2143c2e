package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// ErrorDump flattens an error for the request log sink: the top message,
// the coded classification, the unwrap chain, and whatever Postgres detail
// the driver attached.
type ErrorDump struct {
	TopMessage string   `json:"top_message"`
	Code       Code     `json:"code,omitempty"`
	Chain      []string `json:"chain,omitempty"`

	PGCode       string `json:"pg_code,omitempty"`
	PGConstraint string `json:"pg_constraint,omitempty"`
	PGDetail     string `json:"pg_detail,omitempty"`
	PGMessage    string `json:"pg_message,omitempty"`
}

// Dump builds the loggable view of err. A nil error dumps empty.
func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	dump := ErrorDump{
		TopMessage: err.Error(),
		Chain:      unwrapChain(err),
	}
	if typed := As(err); typed != nil {
		dump.Code = typed.Code()
	}
	dump.attachPostgresFields(err)
	return dump
}

func unwrapChain(err error) []string {
	var chain []string
	for cause := err; cause != nil; cause = errors.Unwrap(cause) {
		chain = append(chain, fmt.Sprintf("%T: %v", cause, cause))
	}
	return chain
}

// attachPostgresFields copies the server-side detail from whichever driver
// error sits in the chain. Both the pgx and lib/pq shapes are checked.
func (d *ErrorDump) attachPostgresFields(err error) {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		d.PGCode = pgxErr.Code
		d.PGConstraint = pgxErr.ConstraintName
		d.PGDetail = pgxErr.Detail
		d.PGMessage = pgxErr.Message
		return
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		d.PGCode = string(pqErr.Code)
		d.PGConstraint = pqErr.Constraint
		d.PGDetail = pqErr.Detail
		d.PGMessage = pqErr.Message
	}
}

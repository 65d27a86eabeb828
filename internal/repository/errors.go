// Package repository defines error types that are reused across the query
// layer.  These values allow higher layers such as handlers to distinguish
// "no such row" from "the store could not answer".  ErrRestaurantNotFound
// should become a 404, while a *QueryError is always a 500 whose detail is
// logged but never shown to the client.
package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-sql-driver/mysql"
)

// ErrRestaurantNotFound is returned when a restaurant cannot be found in the DB.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// QueryError wraps a failure reported by the store.  Code and Hint are
// filled from the driver's diagnostics when the server produced them (the
// MySQL error number and SQLSTATE); connectivity failures leave them empty.
type QueryError struct {
	Op      string // repository operation, e.g. "restaurants.list"
	Message string
	Code    string
	Hint    string
	Err     error
}

func (e *QueryError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (code %s)", e.Op, e.Message, e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *QueryError) Unwrap() error { return e.Err }

// queryError converts a store error into a *QueryError.  sql.ErrNoRows is
// never passed here; callers map it to a not-found sentinel first.
func queryError(op string, err error) error {
	if err == nil {
		return nil
	}
	var qe *QueryError
	if errors.As(err, &qe) {
		return err
	}
	out := &QueryError{Op: op, Message: err.Error(), Err: err}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		out.Message = me.Message
		out.Code = strconv.Itoa(int(me.Number))
		if me.SQLState != [5]byte{} {
			out.Hint = "SQLSTATE " + string(me.SQLState[:])
		}
	}
	return out
}

// IsQueryError reports whether err carries a store failure.
func IsQueryError(err error) bool {
	var qe *QueryError
	return errors.As(err, &qe)
}

// notFoundOr maps sql.ErrNoRows to the given sentinel and everything else
// to a *QueryError.
func notFoundOr(op string, err error, sentinel error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return queryError(op, err)
}

package dberrors

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

// Kind is a coarse classification of a driver error, used for log fields.
type Kind string

const (
	KindNone       Kind = ""
	KindConnection Kind = "connection"
	KindTimeout    Kind = "timeout"
	KindConstraint Kind = "constraint"
	KindSyntax     Kind = "syntax"
	KindQuery      Kind = "query"
)

// Code returns the vendor error code carried by err, or "" when err did not
// come from the mysql or postgres driver.
func Code(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return strconv.Itoa(int(myErr.Number))
	}
	return ""
}

// Classify inspects a low-level error and reports which family it belongs to.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return KindConnection
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return KindTimeout
		}
		return KindConnection
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return KindConnection
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// SQLSTATE class 23 is integrity constraint violation, 42 is syntax/access rule.
		class := pgErr.Code
		if len(class) > 2 {
			class = class[:2]
		}
		switch class {
		case "23":
			return KindConstraint
		case "42":
			return KindSyntax
		case "08":
			return KindConnection
		}
		return KindQuery
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062, 1451, 1452:
			return KindConstraint
		case 1064, 1054, 1146:
			return KindSyntax
		case 1040, 1045, 2002, 2003, 2006, 2013:
			return KindConnection
		}
		return KindQuery
	}

	return KindQuery
}

package persistence

import (
	"context"
	"errors"
	"net"
	"os"
	"reflect"
	"strconv"
	"syscall"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// UnknownErrorCode is reported when no code can be derived from a failure.
const UnknownErrorCode = "unknown"

// StoreFailure is the classified view of a data store error.
type StoreFailure struct {
	Code string
	Hint string
}

// storeErrorShape collects the fields a known failure type may carry.
type storeErrorShape struct {
	code     string
	errno    *int
	name     string
	syscall  string
	reason   string
	routine  string
	severity string
}

// ClassifyError maps err onto a StoreFailure. The code falls back from an explicit
// code, to a numeric errno, to the error kind name, to "unknown". The hint is the
// first present of syscall, reason, routine and severity.
func ClassifyError(err error) StoreFailure {
	if err == nil {
		return StoreFailure{Code: UnknownErrorCode}
	}
	shape := inspect(err)

	failure := StoreFailure{Code: UnknownErrorCode}
	switch {
	case shape.code != "":
		failure.Code = shape.code
	case shape.errno != nil:
		failure.Code = strconv.Itoa(*shape.errno)
	case shape.name != "":
		failure.Code = shape.name
	}

	for _, hint := range []string{shape.syscall, shape.reason, shape.routine, shape.severity} {
		if hint != "" {
			failure.Hint = hint
			break
		}
	}
	return failure
}

func inspect(err error) storeErrorShape {
	shape := storeErrorShape{name: kindName(err)}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		shape.code = pgErr.Code
		shape.routine = pgErr.Routine
		shape.severity = pgErr.Severity
		if pgErr.Code == pgerrcode.TooManyConnections && shape.reason == "" {
			shape.reason = "too_many_connections"
		}
		return shape
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded):
		shape.code = "ETIMEDOUT"
	case errors.Is(err, context.Canceled):
		shape.code = "ECANCELED"
	case errors.Is(err, net.ErrClosed):
		shape.code = "ECLOSED"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if shape.code == "" && dnsErr.IsNotFound {
			shape.code = "ENOTFOUND"
		}
		if shape.code == "" && dnsErr.IsTimeout {
			shape.code = "ETIMEDOUT"
		}
		shape.reason = dnsErr.Err
	}

	var sysErr *os.SyscallError
	if errors.As(err, &sysErr) {
		shape.syscall = sysErr.Syscall
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		n := int(errno)
		shape.errno = &n
		if shape.code == "" {
			shape.code = errnoCode(errno)
		}
		if shape.reason == "" {
			shape.reason = errno.Error()
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && shape.syscall == "" && shape.reason == "" {
		shape.reason = opErr.Op
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		shape.name = "ConnectError"
	}
	return shape
}

// errnoCode names the common connectivity errnos; others stay numeric.
func errnoCode(errno syscall.Errno) string {
	switch errno {
	case syscall.ECONNREFUSED:
		return "ECONNREFUSED"
	case syscall.ECONNRESET:
		return "ECONNRESET"
	case syscall.ETIMEDOUT:
		return "ETIMEDOUT"
	case syscall.EHOSTUNREACH:
		return "EHOSTUNREACH"
	case syscall.ENETUNREACH:
		return "ENETUNREACH"
	case syscall.EPIPE:
		return "EPIPE"
	}
	return ""
}

// kindName returns the concrete type name of err, without pointer or package.
func kindName(err error) string {
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}

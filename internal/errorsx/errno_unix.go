//go:build unix

package errorsx

import "golang.org/x/sys/unix"

const (
	errECONNREFUSED = unix.ECONNREFUSED
	errECONNRESET   = unix.ECONNRESET
	errECONNABORTED = unix.ECONNABORTED
	errEHOSTUNREACH = unix.EHOSTUNREACH
	errENETUNREACH  = unix.ENETUNREACH
	errETIMEDOUT    = unix.ETIMEDOUT
	errEINTR        = unix.EINTR
	errENOTCONN     = unix.ENOTCONN
)

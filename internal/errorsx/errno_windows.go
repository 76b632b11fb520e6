//go:build windows

package errorsx

import "golang.org/x/sys/windows"

const (
	errECONNREFUSED = windows.WSAECONNREFUSED
	errECONNRESET   = windows.WSAECONNRESET
	errECONNABORTED = windows.WSAECONNABORTED
	errEHOSTUNREACH = windows.WSAEHOSTUNREACH
	errENETUNREACH  = windows.WSAENETUNREACH
	errETIMEDOUT    = windows.WSAETIMEDOUT
	errEINTR        = windows.WSAEINTR
	errENOTCONN     = windows.WSAENOTCONN
)

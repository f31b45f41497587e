package webui

import (
	"errors"
	"fmt"
)

var (
	// ErrFieldNotFound means the login form did not have the shape we expect.
	ErrFieldNotFound = errors.New("login field not found")
	// ErrNamespaceNotFound means no frame url carried the session namespace after login.
	ErrNamespaceNotFound = errors.New("session namespace not found")
	// ErrPageNotFound means none of the candidate pages matched their fingerprint.
	ErrPageNotFound = errors.New("page not found")
	// ErrDecodeEmpty means a page was found but nothing could be decoded from it.
	ErrDecodeEmpty = errors.New("page decoded to nothing")
)

// DeviceError is the single error type every collection operation fails with.
type DeviceError struct {
	// Family is the device family, e.g. "sg200".
	Family  string
	Address string
	// Op is the operation that failed, e.g. "fetch mac table".
	Op  string
	Err error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("%s %s: %s: %s", e.Family, e.Address, e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}

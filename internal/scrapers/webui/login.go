package webui

import (
	"context"
	"fmt"
	"time"

	"netinventory/internal/components/browser"
)

const (
	passwordSelector = "input[type='password']"
	identitySelector = "input[type='text'], input[type='email']"
	// fallback for firmware that leaves the username input untyped
	anyInputSelector = "input:not([type='password'])"
	submitSelector   = "input[type='submit'], button, input[type='button']"
)

// Credentials are the web UI username and password of a device.
type Credentials struct {
	Username string
	Password string
}

// String never renders the password.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{Username: %q}", c.Username)
}

func query(frame browser.Frame, selector string) browser.Element {
	el, err := frame.QuerySelector(selector)
	if err != nil {
		// frames that are mid-navigation throw, they cannot be the login frame
		return nil
	}
	return el
}

// Login fills and submits the login form, wherever in the frameset it lives.
//
// When no frame has a password input the page is treated as already
// authenticated and nothing is done. After submitting, Login waits for settle
// since firmware gives no usable signal that the post-login frameset has loaded.
func Login(ctx context.Context, page browser.Page, creds Credentials, settle time.Duration) error {
	var loginFrame browser.Frame
	var password browser.Element
	for _, frame := range page.Frames() {
		password = query(frame, passwordSelector)
		if password != nil {
			loginFrame = frame
			break
		}
	}
	if loginFrame == nil {
		return nil
	}

	identity := query(loginFrame, identitySelector)
	if identity == nil {
		identity = query(loginFrame, anyInputSelector)
	}
	if identity == nil {
		return fmt.Errorf("username input: %w", ErrFieldNotFound)
	}

	err := identity.Fill(creds.Username)
	if err != nil {
		return fmt.Errorf("fill username: %w", err)
	}
	err = password.Fill(creds.Password)
	if err != nil {
		return fmt.Errorf("fill password: %w", err)
	}

	submit := query(loginFrame, submitSelector)
	if submit != nil {
		err = submit.Click()
	} else {
		err = password.Press("Enter")
	}
	if err != nil {
		return fmt.Errorf("submit login: %w", err)
	}

	return browser.Sleep(ctx, settle)
}

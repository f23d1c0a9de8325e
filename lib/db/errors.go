package db

import (
	"errors"
	"io"
	"net"
	"strings"
	"syscall"
)

var retryableErrs = []error{
	syscall.ECONNRESET,
	syscall.ECONNREFUSED,
	io.EOF,
}

// Drivers do not always wrap the syscall error, so we also look at the message.
var retryableMessages = []string{
	"connection reset by peer",
	"connection refused",
	"i/o timeout",
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	for _, retryableErr := range retryableErrs {
		if errors.Is(err, retryableErr) {
			return true
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := err.Error()
	for _, retryableMessage := range retryableMessages {
		if strings.Contains(msg, retryableMessage) {
			return true
		}
	}

	return false
}

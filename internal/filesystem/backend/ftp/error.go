package ftp

import (
	"errors"
	"net/textproto"

	"github.com/jlaffaye/ftp"
)

func isBadCommand(err error) bool {
	return isProtoCodeErr(err, ftp.StatusBadCommand)
}

func isNotImplementedErr(err error) bool {
	return isProtoCodeErr(err, ftp.StatusNotImplemented)
}

func isFileUnavailableErr(err error) bool {
	return isProtoCodeErr(err, ftp.StatusFileUnavailable)
}

func isProtoCodeErr(err error, code int) bool {
	var protoErr *textproto.Error
	if !errors.As(err, &protoErr) {
		return false
	}

	return protoErr.Code == code
}

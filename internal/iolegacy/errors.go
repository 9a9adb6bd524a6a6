package iolegacy

import (
	"fmt"

	"github.com/acdh-oeaw/minedb/pkg/errcode"
)

// RequestError creates an error for a transport-level request failure.
func RequestError(url string, err error) error {
	return errcode.New(
		errcode.APIRequestError,
		fmt.Sprintf("request error when accessing %s", url),
		err,
	)
}

// StatusError creates an error for a non-2xx API response.
func StatusError(url string, status int, body string) error {
	return errcode.New(
		errcode.APIRequestError,
		fmt.Sprintf("HTTP error %d when accessing %s", status, url),
		fmt.Errorf("%s", body),
	)
}

// DecodeError creates an error for an undecodable API response.
func DecodeError(url string, err error) error {
	return errcode.New(
		errcode.APIDecodeError,
		fmt.Sprintf("cannot decode response from %s", url),
		err,
	)
}

// VocabCycleError creates an error for a cyclic vocabulary parent
// chain.
func VocabCycleError(leafURL string, termID int) error {
	return errcode.New(
		errcode.VocabCycleError,
		fmt.Sprintf(
			"vocabulary parent chain of %s revisits term %d",
			leafURL, termID,
		),
		nil,
	)
}

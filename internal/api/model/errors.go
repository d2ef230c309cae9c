// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

// ErrorResponse is the JSON body of every client-facing error.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func (e ErrorResponse) Error() string {
	return e.Detail
}

// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package dict

import "errors"

// Sentinel errors returned by Dict operations. Callers compare against
// these with errors.Is; the concrete error returned is usually wrapped
// with additional context via fmt.Errorf.
var (
	// ErrKeyExists is returned by Add when the key is already present.
	ErrKeyExists = errors.New("dict: key exists")
	// ErrNotFound is returned by Delete/Unlink when the key is absent.
	ErrNotFound = errors.New("dict: key not found")
	// ErrAllocationFailure is returned by TryExpand when the bucket
	// array could not be allocated.
	ErrAllocationFailure = errors.New("dict: allocation failed")
	// ErrInvalidArgument is returned when a caller-supplied size or
	// state precondition is violated (e.g. expanding while rehashing).
	ErrInvalidArgument = errors.New("dict: invalid argument")
)

package domain

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrPartyNotFound = errors.New("party not found")
	ErrRemote        = errors.New("remote service error")
	ErrValidation    = errors.New("invalid invoice document")
	ErrEditAborted   = errors.New("edit aborted")
	ErrRender        = errors.New("render failed")
)

package usecase

import "errors"

// ErrNoRows is what repos report when a lookup matches nothing. Postgres maps
// sql.ErrNoRows onto it so services can tell "absent" from a broken database.
var ErrNoRows = errors.New("no rows")

type ErrNotFound string

func (e ErrNotFound) Error() string { return string(e) }

type ErrForbidden string

func (e ErrForbidden) Error() string { return string(e) }

type ErrBadRequest string

func (e ErrBadRequest) Error() string { return string(e) }

type ErrInternal string

func (e ErrInternal) Error() string { return string(e) }

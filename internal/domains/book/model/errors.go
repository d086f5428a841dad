package model

import "library-backend/pkg/apperror"

const (
	MsgBookNotFound         = "book id not found"
	MsgBookNotFoundToDelete = "no book exists with the id to delete"
	MsgAuthorsNotRegistered = "there are author ids not registered"
	MsgBookNotRegistered    = "could not register the book"
	MsgInvalidBook          = "invalid book data"
)

func NewBookNotFound() *apperror.AppError {
	return apperror.NotFound(MsgBookNotFound)
}

func NewBookNotFoundToDelete() *apperror.AppError {
	return apperror.NotFound(MsgBookNotFoundToDelete)
}

func NewAuthorsNotRegistered() *apperror.AppError {
	return apperror.NotFound(MsgAuthorsNotRegistered)
}

func NewBookNotRegistered(err error) *apperror.AppError {
	return apperror.Internal(MsgBookNotRegistered, err)
}

func NewInvalidBook(err error) *apperror.AppError {
	return apperror.BadRequest(MsgInvalidBook+": "+err.Error(), err)
}

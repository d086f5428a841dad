package model

import "library-backend/pkg/apperror"

const (
	MsgAuthorNotFound         = "author not found"
	MsgAuthorNotFoundToUpdate = "no author exists to update"
	MsgUpdatedAuthorMissing   = "updated author could not be found"
	MsgAuthorNotFoundToDelete = "author not found for deletion"
	MsgAuthorNotRegistered    = "could not register the author"
	MsgAuthorNotUpdated       = "could not update the author"
	MsgInvalidAuthor          = "invalid author data"
)

func NewAuthorNotFound() *apperror.AppError {
	return apperror.NotFound(MsgAuthorNotFound)
}

func NewAuthorNotFoundToUpdate() *apperror.AppError {
	return apperror.NotFound(MsgAuthorNotFoundToUpdate)
}

func NewUpdatedAuthorMissing() *apperror.AppError {
	return apperror.NotFound(MsgUpdatedAuthorMissing)
}

func NewAuthorNotFoundToDelete() *apperror.AppError {
	return apperror.NotFound(MsgAuthorNotFoundToDelete)
}

func NewAuthorNotRegistered(err error) *apperror.AppError {
	return apperror.Internal(MsgAuthorNotRegistered, err)
}

// NewInvalidAuthor carries the validation details in the message
func NewInvalidAuthor(err error) *apperror.AppError {
	return apperror.BadRequest(MsgInvalidAuthor+": "+err.Error(), err)
}

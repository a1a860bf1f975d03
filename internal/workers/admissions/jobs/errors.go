package jobs

import (
	"context"
	stderrors "errors"

	"admissions-workers/internal/admissions"
	"admissions-workers/internal/common/errors"
)

// ToStandardError maps admissions failures to broker error codes.
// applicationID fills in codes that name a record when the error itself does not.
func ToStandardError(err error, applicationID int64) *errors.StandardError {
	if err == nil {
		return nil
	}
	if stdErr, ok := errors.AsStandardError(err); ok {
		return stdErr
	}

	var (
		validationErr *admissions.ValidationError
		inProgressErr *admissions.EditInProgressError
		mismatchErr   *admissions.EditTargetMismatchError
		storageErr    *admissions.StorageError
		deliveryErr   *admissions.DeliveryError
	)

	switch {
	case stderrors.As(err, &validationErr):
		return errors.NewApplicationValidationFailedError(validationErr.Fields)
	case stderrors.As(err, &inProgressErr):
		return errors.NewEditInProgressError(inProgressErr.ActiveID)
	case stderrors.As(err, &mismatchErr):
		return errors.NewEditTargetMismatchError(mismatchErr.ActiveID, mismatchErr.RequestedID)
	case stderrors.Is(err, admissions.ErrNoActiveEdit):
		return errors.NewNoActiveEditError()
	case stderrors.Is(err, admissions.ErrApplicationNotFound):
		return errors.NewApplicationNotFoundError(applicationID)
	case stderrors.Is(err, admissions.ErrConfirmationRequired):
		return errors.NewConfirmationRequiredError(applicationID)
	case stderrors.As(err, &storageErr):
		if storageErr.Write {
			return errors.NewStorageWriteFailedError(storageErr.Key, storageErr.Err)
		}
		return errors.NewStorageReadFailedError(storageErr.Key, storageErr.Err)
	case stderrors.Is(err, admissions.ErrReceipt):
		return errors.NewReceiptGenerationFailedError(err)
	case stderrors.As(err, &deliveryErr):
		return errors.NewDownloadDeliveryFailedError(deliveryErr.Filename, deliveryErr.Err)
	case stderrors.Is(err, admissions.ErrExport):
		return errors.NewExportFailedError(err)
	case stderrors.Is(err, context.DeadlineExceeded), stderrors.Is(err, context.Canceled):
		stdErr := errors.NewInternalError(err)
		stdErr.Retryable = true
		return stdErr
	}
	return errors.NewInternalError(err)
}

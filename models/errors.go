package models

import (
	"errors"
)

var (
	ErrNoOptions            = errors.New("no initialized model options")
	ErrInvalidNeighborCount = errors.New("neighbor count must be a positive integer")
	ErrNoTrainingMatrix     = errors.New("no training matrix")
	ErrNoTargetMatrix       = errors.New("no target matrix")
	ErrNoDesignMatrix       = errors.New("no design matrix for inference")
	ErrNotFitted            = errors.New("model has not been fitted with training data")
	ErrTargetLenMismatch    = errors.New("target length does not match training rows")
	ErrFeatureLenMismatch   = errors.New("number of features does not match number of training features")
	ErrInsufficientData     = errors.New("insufficient observations for the configured neighbor count")
	ErrNonNumericValue      = errors.New("non-numeric value in model input")
)

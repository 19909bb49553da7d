package bankers

import (
	"errors"
	"fmt"

	goerrors "github.com/TudorHulban/go-errors"
)

var (
	ErrInvalidIndex      = errors.New("index out of range")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInconsistentInput = errors.New("inconsistent input")
)

func errIndex(caller, inputName string, value, limit int) error {
	return fmt.Errorf(
		"%w: %w",

		ErrInvalidIndex,
		goerrors.ErrInvalidInput{
			Caller:     caller,
			InputName:  inputName,
			InputValue: value,
			Issue: fmt.Errorf(
				"expected 0 <= %s < %d",
				inputName,
				limit,
			),
		},
	)
}

func errVector(caller, inputName string, vector []int64, length int) error {
	if len(vector) != length {
		return fmt.Errorf(
			"%w: %w",

			ErrInvalidInput,
			goerrors.ErrInvalidInput{
				Caller:     caller,
				InputName:  inputName,
				InputValue: len(vector),
				Issue: fmt.Errorf(
					"expected %d entries",
					length,
				),
			},
		)
	}

	for _, value := range vector {
		if value < 0 {
			return fmt.Errorf(
				"%w: %w",

				ErrInvalidInput,
				goerrors.ErrValidation{
					Caller: caller,
					Issue: goerrors.ErrNegativeInput{
						InputName: inputName,
					},
				},
			)
		}
	}

	return nil
}

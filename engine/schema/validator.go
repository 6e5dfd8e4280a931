package schema

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
)

// -----------------------------------------------------------------------------
// Validator interface
// -----------------------------------------------------------------------------

type Validator interface {
	Validate(ctx context.Context) error
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(ctx context.Context) error

func (f ValidatorFunc) Validate(ctx context.Context) error {
	return f(ctx)
}

// -----------------------------------------------------------------------------
// CompositeValidator
// -----------------------------------------------------------------------------

// CompositeValidator runs validators in order and stops at the first failure
type CompositeValidator struct {
	validators []Validator
}

func NewCompositeValidator(validators ...Validator) *CompositeValidator {
	return &CompositeValidator{
		validators: validators,
	}
}

func (v *CompositeValidator) AddValidator(validator Validator) {
	v.validators = append(v.validators, validator)
}

func (v *CompositeValidator) Validate(ctx context.Context) error {
	for _, validator := range v.validators {
		if err := validator.Validate(ctx); err != nil {
			return err
		}
	}
	return nil
}

// -----------------------------------------------------------------------------
// StructValidator
// -----------------------------------------------------------------------------

var (
	structValidate     *validator.Validate
	structValidateOnce sync.Once
)

func sharedValidate() *validator.Validate {
	structValidateOnce.Do(func() {
		structValidate = validator.New(validator.WithRequiredStructEnabled())
	})
	return structValidate
}

// StructValidator checks `validate` struct tags on value.
type StructValidator struct {
	validate *validator.Validate
	value    any
}

func NewStructValidator(value any) *StructValidator {
	return &StructValidator{
		validate: sharedValidate(),
		value:    value,
	}
}

func (v *StructValidator) Validate(ctx context.Context) error {
	return v.validate.StructCtx(ctx, v.value)
}

package dto

import (
	"reflect"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

// decimal.Decimal 轉成 float64 後才能使用 gt 等數值規則
func newValidator() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

func Validate(req interface{}) error {
	return validate.Struct(req)
}

// ValidationErrorsToMap 欄位 -> 錯誤訊息
func ValidationErrorsToMap(err error) map[string]string {
	out := map[string]string{}
	if ve, ok := err.(validatorv10.ValidationErrors); ok {
		for _, fe := range ve {
			out[fe.Field()] = fe.Tag()
		}
	} else {
		out["error"] = err.Error()
	}
	return out
}

type AddCartItemDTO struct {
	ProductID string `json:"product_id" validate:"required,max=64"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type DecreaseCartItemDTO struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

type CancelOrderDTO struct {
	CustomerID string `json:"customer_id" validate:"required,max=64"`
}

type AddFundsDTO struct {
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
	Description string          `json:"description" validate:"max=255"`
}

type PayDTO struct {
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
	Description string          `json:"description" validate:"max=255"`
}

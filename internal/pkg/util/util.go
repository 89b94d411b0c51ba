package util

import (
	"reflect"

	"github.com/google/uuid"
)

// IsNil 檢查介面是否為 nil
// 介面型別非空但內部指標為 nil 也視為 nil
func IsNil(i interface{}) bool {
	if i == nil {
		return true
	}

	switch reflect.TypeOf(i).Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Slice, reflect.Func, reflect.Interface:
		return reflect.ValueOf(i).IsNil()
	}

	return false
}

func GenerateID() string {
	return uuid.New().String()
}

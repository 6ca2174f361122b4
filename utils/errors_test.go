package utils

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

type someStruct struct{}

func TestNewUnexpectedTypeError(t *testing.T) {
	for _, tc := range []struct {
		name     string
		expected interface{}
		actual   interface{}
		errStr   string
	}{
		{"one", "exp1", "actual1", `expected string but got string`},
		{"two", 1, "actual2", `expected int but got string`},
		{"three", (*someStruct)(nil), 3, `expected *utils.someStruct but got int`},
		{"four", someStruct{}, 4.5, `expected utils.someStruct but got float64`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := NewUnexpectedTypeError(tc.expected, tc.actual)
			test.That(t, err.Error(), test.ShouldContainSubstring, tc.errStr)
		})
	}
}

func TestConfigValidationErrors(t *testing.T) {
	err := NewConfigValidationFieldRequiredError("meshes.json", "file")
	test.That(t, err.Error(), test.ShouldEqual, `meshes.json: "file" is required`)

	cause := errors.New("bad scale")
	err = NewConfigValidationError("meshes.json", cause)
	test.That(t, err.Error(), test.ShouldEqual, `error validating "meshes.json": bad scale`)
	test.That(t, errors.Is(err, cause), test.ShouldBeTrue)
}

func TestFloat64AlmostEqual(t *testing.T) {
	test.That(t, Float64AlmostEqual(1, 1+1e-12, 1e-9), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1, 1.1, 1e-9), test.ShouldBeFalse)
}

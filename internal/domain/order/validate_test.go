package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() Form {
	return Form{
		Name:        "Jane Rees",
		Phone:       "519-555-0142",
		MangoJuices: "2",
		BerryJuices: "0",
		AppleJuices: "5",
	}
}

func TestValidate_Valid(t *testing.T) {
	q, err := NewValidator().Validate(validForm())
	require.NoError(t, err)
	assert.Equal(t, Quantities{Mango: 2, Berry: 0, Apple: 5}, q)
}

func TestValidate_Phone(t *testing.T) {
	v := NewValidator()

	for _, phone := range []string{
		"4165550199",
		"416-555-0199",
		"416 555 0199",
		"(416) 555-0199",
		"+1 416-555-0199",
		"1-416-555-0199",
	} {
		f := validForm()
		f.Phone = phone
		_, err := v.Validate(f)
		assert.NoError(t, err, phone)
	}

	for _, phone := range []string{
		"",
		"555-0199",
		"123-456-7890",
		"416-155-0199",
		"416-555-019",
		"phone",
	} {
		f := validForm()
		f.Phone = phone
		_, err := v.Validate(f)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr, phone)
		assert.Equal(t, []string{"Phone must be a valid Canadian number"}, verr.Messages(), phone)
	}
}

func TestValidate_EmptyName(t *testing.T) {
	f := validForm()
	f.Name = ""

	_, err := NewValidator().Validate(f)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "name", verr.Fields[0].Field)
	assert.Equal(t, "Name is required", verr.Fields[0].Message)
}

func TestValidate_Quantities(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"letters", "two"},
		{"negative", "-1"},
		{"fraction", "1.5"},
		{"overflow", "99999999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			f.BerryJuices = tt.raw

			_, err := NewValidator().Validate(f)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, []string{"Berry juice quantity must be a number"}, verr.Messages())
		})
	}
}

func TestValidate_AllFieldsInFormOrder(t *testing.T) {
	_, err := NewValidator().Validate(Form{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{
		"Name is required",
		"Phone must be a valid Canadian number",
		"Mango juice quantity must be a number",
		"Berry juice quantity must be a number",
		"Apple juice quantity must be a number",
	}, verr.Messages())
	assert.Contains(t, verr.Error(), "Name is required")
}

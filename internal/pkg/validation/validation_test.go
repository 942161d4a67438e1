package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string  `json:"name" validate:"required,max=5"`
	Email string  `json:"email" validate:"omitempty,email"`
	Price float64 `json:"price" validate:"gt=0,decimals=2"`
	Count int     `json:"-" validate:"gte=1"`
}

func TestStruct(t *testing.T) {
	assert.Nil(t, Struct(sample{Name: "ok", Price: 1.25, Count: 1}))

	fields := Struct(sample{Name: "too long", Email: "x", Price: 1.255})
	assert.Equal(t, "Ensure this field has no more than 5 characters.", fields["name"])
	assert.Equal(t, "Enter a valid email address.", fields["email"])
	assert.Equal(t, "Ensure that there are no more than 2 decimal places.", fields["price"])
	assert.Equal(t, "Ensure this value is greater than or equal to 1.", fields["Count"])
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("guest@example.com"))
	assert.False(t, IsValidEmail("guest@"))
	assert.False(t, IsValidEmail(""))
}

type patchSample struct {
	Title *string `json:"title" validate:"omitnil,notblank,max=10"`
}

func TestStruct_NotBlank(t *testing.T) {
	assert.Nil(t, Struct(patchSample{}))

	ok := "Loft"
	assert.Nil(t, Struct(patchSample{Title: &ok}))

	for _, blank := range []string{"", "   "} {
		v := blank
		fields := Struct(patchSample{Title: &v})
		assert.Equal(t, "This field may not be blank.", fields["title"], "value %q", blank)
	}
}

func TestStruct_DecimalsNearUpperBound(t *testing.T) {
	type price struct {
		Amount float64 `json:"amount" validate:"decimals=2"`
	}
	for _, v := range []float64{99999999.99, 12345678.91, 0.1, 3} {
		assert.Nil(t, Struct(price{Amount: v}), "value %v", v)
	}
	fields := Struct(price{Amount: 99999999.991})
	assert.Equal(t, "Ensure that there are no more than 2 decimal places.", fields["amount"])
}

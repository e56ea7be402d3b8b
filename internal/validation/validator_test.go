package validation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joao-fontenele/bugstore/internal/domain"
)

type lineRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

type sampleRequest struct {
	Email     string          `json:"email" validate:"required,email"`
	Price     decimal.Decimal `json:"price" validate:"positive"`
	BirthDate time.Time       `json:"birth_date" validate:"required,lt"`
	Items     []lineRequest   `json:"items" validate:"required,min=1,dive"`
}

func validSample() sampleRequest {
	return sampleRequest{
		Email:     "ada@example.com",
		Price:     decimal.RequireFromString("9.99"),
		BirthDate: time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC),
		Items:     []lineRequest{{ProductID: "5f0c7d1e-8a4b-4d3e-9c1a-2b3c4d5e6f70", Quantity: 1}},
	}
}

func fieldNames(fields []domain.FieldError) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	return names
}

func TestValidator_Valid(t *testing.T) {
	v := New()
	assert.Empty(t, v.Struct(validSample()))
	assert.NoError(t, v.Check(validSample(), "invalid"))
}

func TestValidator_ReportsEveryField(t *testing.T) {
	v := New()
	req := validSample()
	req.Email = "not-an-email"
	req.Price = decimal.RequireFromString("-1")
	req.BirthDate = time.Now().Add(24 * time.Hour)
	req.Items = []lineRequest{{ProductID: "abc", Quantity: 0}}

	fields := v.Struct(req)

	assert.ElementsMatch(t,
		[]string{"email", "price", "birth_date", "items[0].product_id", "items[0].quantity"},
		fieldNames(fields),
	)
}

func TestValidator_Messages(t *testing.T) {
	v := New()
	req := validSample()
	req.Email = ""
	req.BirthDate = time.Now().Add(time.Hour)
	req.Items = nil

	fields := v.Struct(req)
	byField := map[string]string{}
	for _, f := range fields {
		byField[f.Field] = f.Message
	}

	assert.Equal(t, "is required", byField["email"])
	assert.Equal(t, "must be in the past", byField["birth_date"])
	assert.Equal(t, "is required", byField["items"])
}

func TestValidator_EmptyItems(t *testing.T) {
	v := New()
	req := validSample()
	req.Items = []lineRequest{}

	fields := v.Struct(req)
	require.Len(t, fields, 1)
	assert.Equal(t, "items", fields[0].Field)
	assert.Equal(t, "must contain at least 1 item(s)", fields[0].Message)
}

func TestValidator_CheckReturnsTaggedError(t *testing.T) {
	v := New()
	req := validSample()
	req.Price = decimal.Zero

	err := v.Check(req, "invalid product")
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestValidator_PositiveDecimal(t *testing.T) {
	v := New()

	tests := []struct {
		name  string
		price string
		valid bool
	}{
		{"regular price", "9.99", true},
		{"below float64 range", "1e-400", true},
		{"above float64 range", "1e400", true},
		{"zero", "0", false},
		{"tiny negative", "-1e-400", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSample()
			req.Price = decimal.RequireFromString(tt.price)

			fields := v.Struct(req)
			if tt.valid {
				assert.Empty(t, fields)
				return
			}
			require.Len(t, fields, 1)
			assert.Equal(t, "price", fields[0].Field)
			assert.Equal(t, "must be greater than 0", fields[0].Message)
		})
	}
}

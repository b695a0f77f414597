package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string     { return &s }
func statusPtr(s Status) *Status { return &s }

func TestServiceFields_ValidateCreate(t *testing.T) {
	tests := []struct {
		name    string
		fields  ServiceFields
		wantErr bool
	}{
		{name: "name only", fields: ServiceFields{Name: strPtr("API")}},
		{name: "all fields", fields: ServiceFields{Name: strPtr("API"), Description: strPtr("public api"), Status: statusPtr(StatusMajorOutage)}},
		{name: "empty status means default", fields: ServiceFields{Name: strPtr("API"), Status: statusPtr("")}},
		{name: "missing name", fields: ServiceFields{Description: strPtr("x")}, wantErr: true},
		{name: "blank name", fields: ServiceFields{Name: strPtr("   ")}, wantErr: true},
		{name: "unknown status", fields: ServiceFields{Name: strPtr("API"), Status: statusPtr("Down")}, wantErr: true},
		{name: "wrong case status", fields: ServiceFields{Name: strPtr("API"), Status: statusPtr("operational")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fields.ValidateCreate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrValidation))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestServiceFields_ValidateUpdate(t *testing.T) {
	require.NoError(t, ServiceFields{}.ValidateUpdate())
	require.NoError(t, ServiceFields{Status: statusPtr(StatusPartialOutage)}.ValidateUpdate())
	require.NoError(t, ServiceFields{Description: strPtr("")}.ValidateUpdate())

	err := ServiceFields{Name: strPtr("")}.ValidateUpdate()
	require.ErrorIs(t, err, ErrValidation)

	err = ServiceFields{Status: statusPtr("Broken")}.ValidateUpdate()
	require.ErrorIs(t, err, ErrValidation)
}

func TestServiceFields_NewServiceDefaultsStatus(t *testing.T) {
	svc := ServiceFields{Name: strPtr("API")}.NewService()
	assert.Equal(t, "API", svc.Name)
	assert.Equal(t, StatusOperational, svc.Status)
	assert.Empty(t, svc.ID)
	assert.True(t, svc.CreatedAt.IsZero())
}

func TestServiceFields_ApplyKeepsIdentity(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := &Service{
		ID:          "1b4e28ba-2fa1-41d2-883f-0016d3cca427",
		CreatedAt:   created,
		Name:        "API",
		Description: "public api",
		Status:      StatusOperational,
	}

	ServiceFields{Status: statusPtr(StatusDegradedPerformance)}.Apply(svc)

	assert.Equal(t, "1b4e28ba-2fa1-41d2-883f-0016d3cca427", svc.ID)
	assert.Equal(t, created, svc.CreatedAt)
	assert.Equal(t, "API", svc.Name)
	assert.Equal(t, "public api", svc.Description)
	assert.Equal(t, StatusDegradedPerformance, svc.Status)

	ServiceFields{Description: strPtr(""), Status: statusPtr("")}.Apply(svc)
	assert.Empty(t, svc.Description)
	assert.Equal(t, StatusDegradedPerformance, svc.Status, "empty status leaves the value untouched")
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    Status
		wantErr bool
	}{
		{raw: "Operational", want: StatusOperational},
		{raw: "  partial outage ", want: StatusPartialOutage},
		{raw: "MAJOR OUTAGE", want: StatusMajorOutage},
		{raw: "degraded performance", want: StatusDegradedPerformance},
		{raw: "", wantErr: true},
		{raw: "down", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseStatus(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateID(t *testing.T) {
	require.NoError(t, ValidateID(NewID()))

	for _, bad := range []string{"", "123", "not-a-uuid", "{1b4e28ba-2fa1-41d2-883f-0016d3cca427}", "1B4E28BA-2FA1-41D2-883F-0016D3CCA427"} {
		err := ValidateID(bad)
		assert.ErrorIs(t, err, ErrMalformedIdentifier, "id %q", bad)
	}
}

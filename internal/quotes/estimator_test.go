package quotes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/swiftmoveclean/ops-backend/internal/bookings"
	"github.com/swiftmoveclean/ops-backend/internal/money"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		name        string
		serviceType string
		moveSize    string
		additional  []string
		want        money.Cents
	}{
		{"residential studio", bookings.ServiceResidentialMoving, bookings.SizeStudio, nil, 29900},
		{"residential 2br", bookings.ServiceResidentialMoving, bookings.SizeTwoBedroom, nil, 59900},
		{"residential 4br", bookings.ServiceResidentialMoving, bookings.SizeFourBedroom, nil, 99900},
		{"commercial small office", bookings.ServiceCommercialMoving, bookings.SizeOfficeSmall, nil, 79900},
		{"commercial large office", bookings.ServiceCommercialMoving, bookings.SizeOfficeLarge, nil, 149900},
		{"house cleaning 2br", bookings.ServiceHouseCleaning, bookings.SizeTwoBedroom, nil, 22900},
		{"office cleaning small", bookings.ServiceOfficeCleaning, bookings.SizeOfficeSmall, nil, 9900},
		{"full service 4br", bookings.ServiceFullService, bookings.SizeFourBedroom, nil, 119900},
		{"unknown size falls back to default", bookings.ServiceResidentialMoving, "", nil, 29900},
		{"size outside the service table falls back", bookings.ServiceOfficeCleaning, bookings.SizeStudio, nil, 29900},
		{"additional services add a flat fee each", bookings.ServiceHouseCleaning, bookings.SizeStudio,
			[]string{"packing", "storage"}, 24900},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Estimate(tt.serviceType, tt.moveSize, tt.additional))
		})
	}
}
